// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Email       EmailConfig
	Shopify     ShopifyConfig
	Tracking    TrackingConfig
	Sync        SyncConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type ShopifyConfig struct {
	APIVersion   string
	ClientID     string
	ClientSecret string
}

type TrackingConfig struct {
	// Public base URL of the customer-facing tracking page, used in email
	// links: <PublicBaseURL>/<trackingNumber>.
	PublicBaseURL string
}

type SyncConfig struct {
	// How many days back order sync reaches on each run.
	OrderLookbackDays int
	// Days without a reply before an address email gets a reminder.
	FollowUpAfterDays int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "shopdash"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "465"),
			SMTPUsername: getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASS", ""),
			FromEmail:    getEnv("EMAIL_FROM", "noreply@shopdash.io"),
			FromName:     getEnv("EMAIL_FROM_NAME", "Shopdash"),
		},
		Shopify: ShopifyConfig{
			APIVersion:   getEnv("SHOPIFY_API_VERSION", "2024-01"),
			ClientID:     getEnv("SHOPIFY_CLIENT_ID", ""),
			ClientSecret: getEnv("SHOPIFY_CLIENT_SECRET", ""),
		},
		Tracking: TrackingConfig{
			PublicBaseURL: getEnv("PUBLIC_TRACKING_URL", "http://localhost:3000/track"),
		},
		Sync: SyncConfig{
			OrderLookbackDays: getEnvAsInt("SYNC_ORDER_LOOKBACK_DAYS", 30),
			FollowUpAfterDays: getEnvAsInt("EMAIL_FOLLOWUP_DAYS", 3),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Email.SMTPHost != "" && c.Email.SMTPUsername == "" {
		return fmt.Errorf("SMTP_USER is required when SMTP_HOST is set")
	}

	return nil
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
