// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Email       EmailConfig
	I18n        I18nConfig
	Frontend    FrontendConfig
	App         AppConfig
	Scheduler   SchedulerConfig
	Cache       CacheConfig
	Seed        SeedConfig
}

type FrontendConfig struct {
	BaseURL     string
	Dir         string
	CORSOrigins []string
}

type AppConfig struct {
	APIEndpoint string
	UploadDir   string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URL           string
	Host          string
	Port          string
	User          string
	Password      string
	Database      string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MaxLifetime   int
	LogLevel      string
	AutoMigrate   bool
	SeedOnStartup bool
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
	CookieName     string
}

type RedisConfig struct {
	URL string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type EmailConfig struct {
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	FromEmail      string
	FromName       string
	NotifyEmails   []string
}

type I18nConfig struct {
	DefaultLocale string
}

type SchedulerConfig struct {
	Enabled             bool
	ExpiryDigestSpec    string
	ExpiryWindowDays    int
	ExpiredLookbackDays int
}

type CacheConfig struct {
	RegionTTLSeconds int
	RegionMaxEntries int
}

type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

const defaultJWTSecret = "your-secret-key-change-in-production"

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			Database:      getEnv("DB_NAME", "mining_licensing"),
			SSLMode:       getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:   getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:      getEnv("DB_LOG_LEVEL", "warn"),
			AutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", true),
			SeedOnStartup: getEnvAsBool("DB_SEED", true),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("AUTH_SECRET", getEnv("JWT_SECRET", defaultJWTSecret)),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 1),
			CookieName:     getEnv("SESSION_COOKIE_NAME", "session_token"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "mining-license-documents"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			SMTPHost:       getEnv("SMTP_HOST", ""),
			SMTPPort:       getEnv("SMTP_PORT", "587"),
			SMTPUsername:   getEnv("SMTP_USERNAME", ""),
			SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
			FromEmail:      getEnv("FROM_EMAIL", "noreply@mining.gov"),
			FromName:       getEnv("FROM_NAME", "Ministry of Energy, Minerals and Water"),
			NotifyEmails:   getEnvAsSlice("NOTIFY_EMAILS", nil),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Frontend: FrontendConfig{
			BaseURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
			Dir:         getEnv("FRONTEND_DIR", ""),
			CORSOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		App: AppConfig{
			APIEndpoint: getEnv("API_ENDPOINT", "http://localhost:8080/api"),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		},
		Scheduler: SchedulerConfig{
			Enabled:             getEnvAsBool("SCHEDULER_ENABLED", true),
			ExpiryDigestSpec:    getEnv("EXPIRY_DIGEST_CRON", "0 6 * * *"),
			ExpiryWindowDays:    getEnvAsInt("EXPIRY_WINDOW_DAYS", 30),
			ExpiredLookbackDays: getEnvAsInt("EXPIRED_LOOKBACK_DAYS", 7),
		},
		Cache: CacheConfig{
			RegionTTLSeconds: getEnvAsInt("REGION_CACHE_TTL", 600),
			RegionMaxEntries: getEnvAsInt("REGION_CACHE_SIZE", 64),
		},
		Seed: SeedConfig{
			AdminName:     getEnv("SEED_ADMIN_NAME", "System Administrator"),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@mining.gov"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123!@#"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultJWTSecret && c.Environment == "production" {
		return fmt.Errorf("AUTH_SECRET must be changed in production")
	}

	if c.Database.URL == "" && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive, got %d", c.JWT.AccessTokenTTL)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
