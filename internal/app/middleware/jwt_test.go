package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := JWTConfig{
		Secret:         "test-secret",
		Issuer:         "pantry",
		AccessTokenTTL: time.Hour,
	}

	token, err := GenerateToken(cfg, "household-1", "user-1", "alex")
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, "household-1", claims.HouseholdID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alex", claims.Username)
	assert.Equal(t, "pantry", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", Issuer: "pantry", AccessTokenTTL: time.Hour}

	token, err := GenerateToken(cfg, "household-1", "user-1", "alex")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", Issuer: "pantry", AccessTokenTTL: -time.Minute}

	token, err := GenerateToken(cfg, "household-1", "user-1", "alex")
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg.Secret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
