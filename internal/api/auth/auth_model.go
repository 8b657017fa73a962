package auth

import (
	"errors"
	"strings"
	"time"
)

var ErrEmailTaken = errors.New("auth: email already registered")
var ErrInvalidCredentials = errors.New("auth: invalid email or password")
var ErrUserNotFound = errors.New("auth: user not found")

// Options carries the token and hashing parameters the service signs with.
type Options struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	BcryptCost int
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser is the user shape returned to clients. The stored record keeps
// the password hash; this never does.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	Success     bool       `json:"success"`
	User        PublicUser `json:"user"`
	AccessToken string     `json:"accessToken"`
}

// userKey namespaces user records by lowercased email.
func userKey(email string) string {
	return "user:" + strings.ToLower(strings.TrimSpace(email))
}

// userIDKey indexes the same record by generated ID for token-based lookups.
func userIDKey(id string) string {
	return "user_id:" + id
}

// displayName falls back to the mailbox part of the email, matching what
// clients expect when no name was given at signup.
func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
