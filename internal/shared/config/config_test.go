package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "planets.db", cfg.DataSourceName())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Redis.ReportTTL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, int64(65536), cfg.Live.MaxMessageBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("TOKEN_SECRET", testSecret)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "designs")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=db.internal port=5432 user=postgres password=postgres dbname=designs sslmode=disable", cfg.DataSourceName())
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Logging.JSONFormat)
	assert.True(t, cfg.Auth.CookieSecure)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "TOKEN_SECRET is required"},
		{"short secret", map[string]string{"TOKEN_SECRET": "short"}, "at least 32 characters"},
		{"unknown driver", map[string]string{"TOKEN_SECRET": testSecret, "DB_DRIVER": "mysql"}, "DB_DRIVER must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
