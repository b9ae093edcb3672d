package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/travel")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CHECKOUT_TTL", "")
	t.Setenv("CATALOG_APPROVED_VENDORS_ONLY", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.CheckoutTTL)
	assert.False(t, cfg.ApprovedVendorsOnly)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/travel")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CHECKOUT_TTL", "5m")
	t.Setenv("CATALOG_APPROVED_VENDORS_ONLY", "true")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.CheckoutTTL)
	assert.True(t, cfg.ApprovedVendorsOnly)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/travel")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CHECKOUT_TTL", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "CHECKOUT_TTL")
}
