package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	NATS     NATSConfig
	Log      LogConfig
	Tenant   TenantConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins string
	BodyLimit      int
}

type DatabaseConfig struct {
	URL         string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	SessionExpiry  time.Duration
	Issuer         string
	CookieName     string
	CookieSecure   bool
}

type EmailConfig struct {
	Enabled      bool
	APIKey       string
	FromEmail    string
	FromName     string
	DashboardURL string
}

type NATSConfig struct {
	URL     string
	Subject string
}

type LogConfig struct {
	Level  string
	Format string
}

// MaxTenantCacheTTL bounds how long a deactivated tenant can keep resolving
const MaxTenantCacheTTL = time.Minute

type TenantConfig struct {
	BaseDomain string
	// CacheTTL is at most MaxTenantCacheTTL; zero disables the cache
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	// .env is optional; production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimit:      getIntEnv("SERVER_BODY_LIMIT", 12*1024*1024),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "leadcapture"),
			Password:    getEnv("DB_PASSWORD", "leadcapture"),
			DBName:      getEnv("DB_NAME", "leadcapture"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			SessionExpiry:  getDurationEnv("JWT_SESSION_EXPIRY", 12*time.Hour),
			Issuer:         getEnv("JWT_ISSUER", "leadcapture"),
			CookieName:     getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure:   getBoolEnv("SESSION_COOKIE_SECURE", true),
		},
		Email: EmailConfig{
			Enabled:      getBoolEnv("EMAIL_ENABLED", false),
			APIKey:       getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("EMAIL_FROM", "leads@tradeshow.app"),
			FromName:     getEnv("EMAIL_FROM_NAME", "TradeShow SaaS"),
			DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3000/rep/dashboard"),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT_PREFIX", "leadcapture"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tenant: TenantConfig{
			BaseDomain: strings.ToLower(getEnv("TENANT_BASE_DOMAIN", "tradeshow.app")),
			CacheTTL:   getDurationEnv("TENANT_CACHE_TTL", 15*time.Second),
		},
	}

	if cfg.Tenant.CacheTTL < 0 {
		cfg.Tenant.CacheTTL = 0
	}
	if cfg.Tenant.CacheTTL > MaxTenantCacheTTL {
		cfg.Tenant.CacheTTL = MaxTenantCacheTTL
	}

	if cfg.Email.Enabled && cfg.Email.APIKey == "" {
		return nil, errors.New("RESEND_API_KEY is required when EMAIL_ENABLED=true")
	}

	return cfg, nil
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
