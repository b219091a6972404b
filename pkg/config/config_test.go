package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "workspace-logos", cfg.Storage.LogoBucket)
	assert.Equal(t, "avatars", cfg.Storage.AvatarBucket)
	assert.Equal(t, "file-banners", cfg.Storage.BannerBucket)
	assert.Equal(t, "https://cdn.cypress.app", cfg.Storage.CDNBaseURL)
	assert.Equal(t, "http://localhost:3000/", cfg.Site.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("R2_BANNER_BUCKET", "custom-banners")
	t.Setenv("CDN_BASE_URL", "https://cdn.example.com")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_456")
	t.Setenv("SITE_URL", "https://app.example.com/")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "custom-banners", cfg.Storage.BannerBucket)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.CDNBaseURL)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "whsec_456", cfg.Stripe.WebhookSecret)
	assert.Equal(t, "https://app.example.com/", cfg.Site.URL)
}
