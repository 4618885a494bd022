package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken      string
	ShopifyAccessToken string
	ShopifyShopURL     string
	ShopifyAPIVersion  string
	GeminiAPIKey       string // ixtiyoriy, bo'sh bo'lsa /suggest o'chiriladi
	MappingFile        string
	DBPath             string
	AutoSyncInterval   time.Duration
	PageLimit          int
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		ShopifyAccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		ShopifyShopURL:     os.Getenv("SHOPIFY_SHOP_URL"),
		ShopifyAPIVersion:  os.Getenv("SHOPIFY_API_VERSION"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		MappingFile:        "tipos_produtos_tags.xlsx", // Default qiymat
		DBPath:             "data/product_tags.db",
		AutoSyncInterval:   6 * time.Hour,
		PageLimit:          250, // Shopify API sahifa limiti
	}

	if mappingFile := os.Getenv("MAPPING_FILE"); mappingFile != "" {
		config.MappingFile = mappingFile
	}

	if dbPath := os.Getenv("DB_FILE"); dbPath != "" {
		config.DBPath = dbPath
	}

	if rawInterval := os.Getenv("AUTO_SYNC_INTERVAL_HOURS"); rawInterval != "" {
		if parsed, err := strconv.Atoi(rawInterval); err == nil && parsed > 0 {
			config.AutoSyncInterval = time.Duration(parsed) * time.Hour
		} else {
			return nil, fmt.Errorf("AUTO_SYNC_INTERVAL_HOURS noto'g'ri formatda: %s", rawInterval)
		}
	}

	// Validatsiya
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	if config.ShopifyAccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN environment variable bo'sh")
	}
	if config.ShopifyShopURL == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_URL environment variable bo'sh")
	}
	if config.ShopifyAPIVersion == "" {
		return nil, fmt.Errorf("SHOPIFY_API_VERSION environment variable bo'sh")
	}

	return config, nil
}
