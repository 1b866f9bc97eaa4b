package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTIssuer        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Password policy
	PasswordMinLength int

	// Redis (optional, product cache)
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProductCacheTTL time.Duration

	// Logging
	LogLevel         string
	LogRetentionDays int

	// Error tracking
	SentryDSN string
	AppEnv    string

	// Server
	Port        string
	CORSOrigins string
	BodyLimit   int
}

var defaults = map[string]any{
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "",
	"DB_NAME":     "storefront",
	"DB_SSLMODE":  "disable",

	"JWT_SECRET":         "",
	"JWT_ISSUER":         "storefront-api",
	"JWT_ACCESS_EXPIRY":  "15m",
	"JWT_REFRESH_EXPIRY": "168h",

	"PASSWORD_MIN_LENGTH": 1,

	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"PRODUCT_CACHE_TTL": "60s",

	"LOG_LEVEL":          "info",
	"LOG_RETENTION_DAYS": 30,

	"SENTRY_DSN": "",
	"APP_ENV":    "development",

	"PORT":         "8080",
	"CORS_ORIGINS": "*",
	"BODY_LIMIT":   1024 * 1024,
}

// Load reads configuration from the environment and, when CONFIG_FILE is set,
// from that file. Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		JWTAccessExpiry:  parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(v.GetString("JWT_REFRESH_EXPIRY"), 168*time.Hour),

		PasswordMinLength: v.GetInt("PASSWORD_MIN_LENGTH"),

		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		ProductCacheTTL: parseDuration(v.GetString("PRODUCT_CACHE_TTL"), time.Minute),

		LogLevel:         v.GetString("LOG_LEVEL"),
		LogRetentionDays: v.GetInt("LOG_RETENTION_DAYS"),

		SentryDSN: v.GetString("SENTRY_DSN"),
		AppEnv:    v.GetString("APP_ENV"),

		Port:        v.GetString("PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
		BodyLimit:   v.GetInt("BODY_LIMIT"),
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DBPassword == "" && c.IsProduction() {
		errs = append(errs, errors.New("DB_PASSWORD is required in production"))
	}
	if c.JWTAccessExpiry <= 0 || c.JWTAccessExpiry >= c.JWTRefreshExpiry {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_EXPIRY (%s) must be positive and shorter than JWT_REFRESH_EXPIRY (%s)",
			c.JWTAccessExpiry, c.JWTRefreshExpiry))
	}
	if c.PasswordMinLength < 1 {
		errs = append(errs, errors.New("PASSWORD_MIN_LENGTH must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
