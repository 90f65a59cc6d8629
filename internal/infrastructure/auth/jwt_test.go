package auth

import (
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "unit-test-secret",
		AccessTokenExpiration: expiration,
		Issuer:                "bizdesk-test",
	})
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	service := testService(15 * time.Minute)
	userID := uuid.New()

	token, err := service.Generate(userID, "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	claims, err := service.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(), time.Duration(0))
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	service := testService(15 * time.Minute)
	userID := uuid.New()

	first, err := service.Generate(userID, "user@example.com")
	require.NoError(t, err)
	second, err := service.Generate(userID, "user@example.com")
	require.NoError(t, err)

	firstClaims, err := service.Verify(first.AccessToken)
	require.NoError(t, err)
	secondClaims, err := service.Verify(second.AccessToken)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := testService(-time.Minute)

	token, err := service.Generate(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = service.Verify(token.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := testService(15 * time.Minute).Generate(uuid.New(), "user@example.com")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-different-secret",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "bizdesk-test",
	})

	_, err = other.Verify(token.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := testService(15 * time.Minute).Verify("not.a.token")
	assert.Error(t, err)
}
