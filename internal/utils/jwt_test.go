package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plmining/licensing-backend/internal/config"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager(config.JWTConfig{SecretKey: "first-secret", AccessTokenTTL: 2})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, tokens.TTL())

	id := uuid.New()
	signed, issued, err := tokens.Generate(id, "amina@mining.gov", "Amina", "DIRECTOR")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.SessionID())

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "DIRECTOR", claims.Role)
	assert.Equal(t, issued.SessionID(), claims.SessionID())
}

func TestTokenManagerRejectsOtherSecret(t *testing.T) {
	first, err := NewTokenManager(config.JWTConfig{SecretKey: "first-secret", AccessTokenTTL: 1})
	require.NoError(t, err)
	second, err := NewTokenManager(config.JWTConfig{SecretKey: "second-secret", AccessTokenTTL: 1})
	require.NoError(t, err)

	signed, _, err := first.Generate(uuid.New(), "a@b.so", "A", "OFFICER")
	require.NoError(t, err)

	_, err = second.Validate(signed)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpiredToken(t *testing.T) {
	tokens, err := NewTokenManager(config.JWTConfig{SecretKey: "secret", AccessTokenTTL: 1})
	require.NoError(t, err)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := tokens.Generate(uuid.New(), "a@b.so", "A", "OFFICER")
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestNewTokenManagerRequiresConfig(t *testing.T) {
	_, err := NewTokenManager(config.JWTConfig{AccessTokenTTL: 1})
	assert.Error(t, err)

	_, err = NewTokenManager(config.JWTConfig{SecretKey: "secret"})
	assert.Error(t, err)
}
