package appMiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/internal/types"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, audience string, ttl time.Duration) string {
	t.Helper()
	claims := types.Claims{
		UserID: "user-1",
		Email:  "traveler@example.com",
		Name:   "여행자",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func runRequest(token string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	handler := Authenticate(testSecret, "daytrip-client")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthenticate_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, "daytrip-client", time.Hour)
	rec, captured := runRequest(token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)

	userID, ok := GetUserIDFromContext(captured.Context())
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	email, _ := GetUserEmailFromContext(captured.Context())
	assert.Equal(t, "traveler@example.com", email)

	name, _ := GetUserNameFromContext(captured.Context())
	assert.Equal(t, "여행자", name)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, captured := runRequest("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	token := signToken(t, []byte("other-secret"), "daytrip-client", time.Hour)
	rec, _ := runRequest(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, "daytrip-client", -time.Minute)
	rec, _ := runRequest(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongAudience(t *testing.T) {
	token := signToken(t, testSecret, "other-client", time.Hour)
	rec, _ := runRequest(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	handler := Authenticate(testSecret, "daytrip-client")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
