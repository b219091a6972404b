package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Stripe  StripeConfig
	Site    SiteConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	AccountID    string
	AccessKey    string
	SecretKey    string
	LogoBucket   string
	AvatarBucket string
	BannerBucket string
	CDNBaseURL   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type SiteConfig struct {
	// Doğrulama e-postalarındaki callback linki bu URL'den türetilir.
	URL string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Storage: StorageConfig{
			AccountID:    getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:    getEnv("R2_ACCESS_KEY", ""),
			SecretKey:    getEnv("R2_SECRET_KEY", ""),
			LogoBucket:   getEnv("R2_LOGO_BUCKET", "workspace-logos"),
			AvatarBucket: getEnv("R2_AVATAR_BUCKET", "avatars"),
			BannerBucket: getEnv("R2_BANNER_BUCKET", "file-banners"),
			CDNBaseURL:   getEnv("CDN_BASE_URL", "https://cdn.cypress.app"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Site: SiteConfig{
			URL: getEnv("SITE_URL", "http://localhost:3000/"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
