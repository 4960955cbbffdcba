package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	middleware *AuthMiddleware
	jwt        *jwt.JWTService
	tokens     service.TokenStore
	redis      *miniredis.Miniredis
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger, _ := test.NewNullLogger()

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	tokens := service.NewRedisTokenStore(client)
	return &authFixture{
		middleware: NewAuthMiddleware(jwtService, tokens, logger),
		jwt:        jwtService,
		tokens:     tokens,
		redis:      mr,
	}
}

// issue returns a stored access token for userID.
func (f *authFixture) issue(t *testing.T, userID uuid.UUID) (string, string) {
	t.Helper()
	token, tokenID, err := f.jwt.GenerateAccessToken(userID, "jane@example.com")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Store(context.Background(), jwt.AccessToken, userID, tokenID, time.Minute))
	return token, tokenID
}

func (f *authFixture) call(authorization string) (*httptest.ResponseRecorder, context.Context) {
	var seen context.Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Context()
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.middleware.Authenticate(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()
	token, tokenID := f.issue(t, userID)

	rec, ctx := f.call("Bearer " + token)

	require.Equal(t, http.StatusNoContent, rec.Code)
	gotUser, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, gotUser)
	gotEmail, _ := GetUserEmailFromContext(ctx)
	assert.Equal(t, "jane@example.com", gotEmail)
	gotTokenID, _ := GetTokenIDFromContext(ctx)
	assert.Equal(t, tokenID, gotTokenID)
}

func TestAuthenticate_Rejects(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	revoked, revokedID := f.issue(t, userID)
	require.NoError(t, f.tokens.Revoke(context.Background(), jwt.AccessToken, userID, revokedID))

	refresh, _, err := f.jwt.GenerateRefreshToken(userID, "jane@example.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		body          string
	}{
		{"missing header", "", "Authorization header is required"},
		{"wrong scheme", "Basic abc", "Invalid authorization header format"},
		{"garbage token", "Bearer garbage", "Invalid or expired token"},
		{"refresh token", "Bearer " + refresh, "Invalid token type"},
		{"revoked token", "Bearer " + revoked, "Token has been revoked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ctx := f.call(tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.Nil(t, ctx)
		})
	}
}

func TestAuthenticate_StoreUnavailable(t *testing.T) {
	f := newAuthFixture(t)
	token, _ := f.issue(t, uuid.New())
	f.redis.SetError("ERR store unavailable")

	rec, _ := f.call("Bearer " + token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { called = true })

	rec := httptest.NewRecorder()
	NewCORSMiddleware("").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = httptest.NewRecorder()
	NewCORSMiddleware("https://clinic.example").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, called)
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	RequestLogger(logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/patients", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "HTTP request", entry.Message)
	assert.Equal(t, http.MethodPost, entry.Data["method"])
	assert.Equal(t, "/api/v1/patients", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
}
