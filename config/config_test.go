package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casacomune/community-api/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 3, cfg.RateLimit.MaxPerWindow)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "eu-west-1", cfg.Mail.Region)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_RateLimitOverrides(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("RATE_LIMIT_MAX_PER_WINDOW", "5")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.RateLimit.MaxPerWindow)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "false")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_RejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("RATE_LIMIT_MAX_PER_WINDOW", "0")

	_, err := config.Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_MAX_PER_WINDOW")
}

func TestLoad_MailCredentialsRequireAdminAddress(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("MAIL_AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("MAIL_ADMIN_ADDRESS", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "MAIL_ADMIN_ADDRESS")
}

func TestLoad_ParsesCORSOrigins(t *testing.T) {
	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
