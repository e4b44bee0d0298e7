package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EMAIL_ENABLED", "")
	t.Setenv("TENANT_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Tenant.CacheTTL)
	assert.Equal(t, "session", cfg.JWT.CookieName)
	assert.False(t, cfg.Email.Enabled)
}

func TestLoad_EmailWithoutAPIKey(t *testing.T) {
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("TENANT_CACHE_TTL", "forever")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.Tenant.CacheTTL)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_TenantCacheTTLBounds(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"5m", MaxTenantCacheTTL},
		{"0s", 0},
		{"-5s", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TENANT_CACHE_TTL", tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Tenant.CacheTTL)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "u",
		Password: "p",
		DBName:   "leads",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=leads sslmode=disable", cfg.DSN())

	cfg.URL = "postgres://u:p@db:5432/leads"
	assert.Equal(t, "postgres://u:p@db:5432/leads", cfg.DSN())
}
