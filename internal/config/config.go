// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Upstream    UpstreamConfig
	Payment     PaymentConfig
	Checkout    CheckoutConfig
	Auth        AuthConfig
	AWS         AWSConfig
	Email       EmailConfig
	Geo         GeoConfig
	I18n        I18nConfig
	Frontend    FrontendConfig
}

type FrontendConfig struct {
	BaseURL string
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

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL int // seconds, for the catalog read-through cache
}

// UpstreamConfig points at the external catalog/order REST backend.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Timeout int // seconds
}

type PaymentConfig struct {
	// Provider selects the gateway driver: "rest" (hosted gateway behind the
	// upstream backend) or "stripe".
	Provider        string
	StripeSecretKey string
	SuccessURL      string
	CancelURL       string
	PollInterval    time.Duration
}

type CheckoutConfig struct {
	ShippingFee int64
	Currency    string
}

type AuthConfig struct {
	// SessionSecret verifies session tokens issued by the hosted auth provider.
	SessionSecret string
	// AdminSecret signs admin console tokens issued by this service.
	AdminSecret   string
	AdminTokenTTL int // hours
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	ContactEmail string
}

type GeoConfig struct {
	DataPath string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3011"),
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
			Database:     getEnv("DB_NAME", "zip_storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsInt("REDIS_CACHE_TTL", 60),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:3012/api"),
			APIKey:  getEnv("UPSTREAM_API_KEY", ""),
			Timeout: getEnvAsInt("UPSTREAM_TIMEOUT", 30),
		},
		Payment: PaymentConfig{
			Provider:        getEnv("PAYMENT_PROVIDER", "rest"),
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			SuccessURL:      getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/payment/success"),
			CancelURL:       getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/payment/failed"),
			PollInterval:    time.Duration(getEnvAsInt("PAYMENT_POLL_INTERVAL_MS", 2000)) * time.Millisecond,
		},
		Checkout: CheckoutConfig{
			ShippingFee: int64(getEnvAsInt("CHECKOUT_SHIPPING_FEE", 30000)),
			Currency:    getEnv("CHECKOUT_CURRENCY", "vnd"),
		},
		Auth: AuthConfig{
			SessionSecret: getEnv("AUTH_SESSION_SECRET", "your-secret-key-change-in-production"),
			AdminSecret:   getEnv("AUTH_ADMIN_SECRET", "your-admin-secret-change-in-production"),
			AdminTokenTTL: getEnvAsInt("AUTH_ADMIN_TTL", 24),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-southeast-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "zip-storefront-assets"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@zipstore.vn"),
			FromName:     getEnv("FROM_NAME", "ZIP Store"),
			ContactEmail: getEnv("CONTACT_EMAIL", "contact@zipstore.vn"),
		},
		Geo: GeoConfig{
			DataPath: getEnv("GEO_DATA_PATH", ""),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "vi"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("auth session secret must be changed in production")
	}

	if c.Auth.AdminSecret == "your-admin-secret-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("admin secret must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Payment.Provider != "rest" && c.Payment.Provider != "stripe" {
		return fmt.Errorf("unknown payment provider %q", c.Payment.Provider)
	}

	if c.Payment.Provider == "stripe" && c.Payment.StripeSecretKey == "" && c.Environment == "production" {
		return fmt.Errorf("stripe secret key is required when the stripe provider is enabled")
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
