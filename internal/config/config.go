package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StripeConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type EmailConfig struct {
	Provider     string
	ResendAPIKey string
	FromAddress  string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	FrontendURL string
	CORSOrigins string
	RedisURL    string
	CheckoutTTL time.Duration

	// Hide packages of vendors that are not approved from public listings.
	ApprovedVendorsOnly bool

	R2     R2Config
	Stripe StripeConfig
	Email  EmailConfig
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "travelmarket"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	ttl, err := time.ParseDuration(getEnv("CHECKOUT_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_TTL: %w", err)
	}
	cfg.CheckoutTTL = ttl

	cfg.ApprovedVendorsOnly, err = strconv.ParseBool(getEnv("CATALOG_APPROVED_VENDORS_ONLY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_APPROVED_VENDORS_ONLY: %w", err)
	}

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Stripe config
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.Currency = getEnv("STRIPE_CURRENCY", "usd")
	cfg.Stripe.SuccessURL = getEnv("STRIPE_SUCCESS_URL", cfg.FrontendURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}")
	cfg.Stripe.CancelURL = getEnv("STRIPE_CANCEL_URL", cfg.FrontendURL+"/checkout/cancel")

	// Email config
	cfg.Email.Provider = getEnv("EMAIL_PROVIDER", "resend")
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "no-reply@travelmarket.local")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "TravelMarket")
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
