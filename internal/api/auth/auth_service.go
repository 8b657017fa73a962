package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/daytrip-ai/daytrip-server/internal/kv"
	"github.com/daytrip-ai/daytrip-server/internal/types"
)

// Service registers users and issues access tokens. User records live in the
// KV store under "user:{email}" with an ID index at "user_id:{id}".
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*PublicUser, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	store  kv.Store
	opts   Options
	logger *slog.Logger
}

func NewServiceImpl(store kv.Store, opts Options, logger *slog.Logger) *ServiceImpl {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &ServiceImpl{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

func (s *ServiceImpl) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignUp")
	defer span.End()
	span.SetAttributes(attribute.String("auth.email", req.Email))

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("auth: email and password are required")
	}

	var existing types.User
	err := s.store.Get(ctx, userKey(req.Email), &existing)
	if err == nil {
		span.SetStatus(codes.Error, "email taken")
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, kv.ErrNotFound) {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := types.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         displayName(req.Name, req.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Set(ctx, userKey(user.Email), user); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to store user: %w", err)
	}
	if err := s.store.Set(ctx, userIDKey(user.ID), user); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to index user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID))
	return s.respond(user)
}

func (s *ServiceImpl) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignIn")
	defer span.End()
	span.SetAttributes(attribute.String("auth.email", req.Email))

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("auth: email and password are required")
	}

	var user types.User
	err := s.store.Get(ctx, userKey(req.Email), &user)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "User signed in", slog.String("user_id", user.ID))
	return s.respond(user)
}

func (s *ServiceImpl) GetUser(ctx context.Context, userID string) (*PublicUser, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "GetUser")
	defer span.End()
	span.SetAttributes(attribute.String("auth.user_id", userID))

	var user types.User
	err := s.store.Get(ctx, userIDKey(userID), &user)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("auth: failed to load user %q: %w", userID, err)
	}
	return &PublicUser{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (s *ServiceImpl) respond(user types.User) (*AuthResponse, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Success:     true,
		User:        PublicUser{ID: user.ID, Email: user.Email, Name: user.Name},
		AccessToken: token,
	}, nil
}

func (s *ServiceImpl) issueToken(user types.User) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.opts.Issuer,
			Audience:  jwt.ClaimStrings{s.opts.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.AccessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}
