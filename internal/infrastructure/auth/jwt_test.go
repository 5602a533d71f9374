package auth

import (
	"testing"
	"time"

	"github.com/foodbridge/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-signing-tokens",
		Issuer:                 "foodbridge-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "donor@example.com",
		Role:   "donor",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "donor@example.com", claims.Email)
	assert.Equal(t, "donor", claims.Role)
	assert.False(t, claims.IsAdmin())

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_AccessTokenRejectedAsRefresh(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "donor@example.com",
		Role:   "donor",
	})
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_ValidateGarbageToken(t *testing.T) {
	service := newTestJWTService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "admin@example.com",
		Role:   "admin",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "admin@example.com")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.IsAdmin())

	refreshClaims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestJWTService_RefreshCountLimit(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "donor@example.com",
		Role:   "donor",
	})
	require.NoError(t, err)

	token := pair.RefreshToken
	for i := 0; i < 3; i++ {
		next, err := service.RefreshTokenPair(token, "donor@example.com")
		require.NoError(t, err)
		token = next.RefreshToken
	}

	_, err = service.RefreshTokenPair(token, "donor@example.com")
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestJWTService_FallsBackToAccessSecret(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "only-one-secret",
		Issuer:                 "foodbridge-test",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		MaxRefreshCount:        1,
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "donor@example.com",
		Role:   "donor",
	})
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}
