package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "session_token", cfg.JWT.CookieName)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.ExpiryDigestSpec)
	assert.Equal(t, defaultJWTSecret, cfg.JWT.SecretKey)
}

func TestAuthSecretTakesPrecedence(t *testing.T) {
	t.Setenv("AUTH_SECRET", "auth-secret")
	t.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "auth-secret", cfg.JWT.SecretKey)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		JWT:         JWTConfig{SecretKey: defaultJWTSecret, AccessTokenTTL: 24},
		Database:    DatabaseConfig{Password: "secret"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "rotated"
	assert.NoError(t, cfg.Validate())
}

func TestNotifyEmailsParsedAsList(t *testing.T) {
	t.Setenv("NOTIFY_EMAILS", " director@mining.gov, ,minister@mining.gov")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"director@mining.gov", "minister@mining.gov"}, cfg.Email.NotifyEmails)
}

func TestDSNPrefersURL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db:5432/n"
	assert.Equal(t, "postgres://u:p@db:5432/n", d.DSN())
}
