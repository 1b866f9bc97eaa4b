package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	require.Equal(t, 1, cfg.PasswordMinLength)
	require.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME: shop_from_file\nJWT_ISSUER: file-issuer\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_ISSUER", "env-issuer")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "shop_from_file", cfg.DBName)
	require.Equal(t, "env-issuer", cfg.JWTIssuer, "environment wins over file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_REFRESH_EXPIRY", "forever")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWTSecret:         "secret",
			DBPassword:        "pw",
			JWTAccessExpiry:   time.Minute,
			JWTRefreshExpiry:  time.Hour,
			PasswordMinLength: 1,
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"missing db password in production", func(c *Config) {
			c.DBPassword = ""
			c.AppEnv = "Production"
		}, "DB_PASSWORD"},
		{"access not shorter than refresh", func(c *Config) { c.JWTAccessExpiry = time.Hour }, "JWT_ACCESS_EXPIRY"},
		{"zero min length", func(c *Config) { c.PasswordMinLength = 0 }, "PASSWORD_MIN_LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	dev := valid()
	dev.DBPassword = ""
	dev.AppEnv = "development"
	require.NoError(t, dev.Validate(), "local databases may run without a password")
}
