package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodbridge/backend/internal/infrastructure/auth"
	"github.com/foodbridge/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "foodbridge-test",
		MaxRefreshCount:        10,
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: userID,
		Email:  "user@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return pair, userID
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/api/v1/donations", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair, userID := issueToken(t, svc, "donor")

	r := newProtectedRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "donor")
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set(AuthHeaderKey, "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_GarbageToken(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPath(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := newTestJWTService()
	pair, _ := issueToken(t, svc, "donor")

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	revoker := auth.NewMemoryTokenRevoker()
	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.Revoker = revoker
	r := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuthMiddleware_UserRevocationInvalidatesOlderTokens(t *testing.T) {
	svc := newTestJWTService()
	pair, userID := issueToken(t, svc, "donor")

	revoker := auth.NewMemoryTokenRevoker()
	require.NoError(t, revoker.RevokeAllForUser(context.Background(), userID.String(), time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.Revoker = revoker
	r := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
