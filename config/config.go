package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    ServerConfig
	Log     LogConfig
	Page    PageConfig
	Catalog CatalogConfig
	Cache   CacheConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string
}

// PageConfig holds the static text of the pricing page. Values are fixed at
// deploy time and never derived from a request.
type PageConfig struct {
	Title        string
	Description  string
	Heading      string
	Subheading   string
	DefaultTheme string
}

type CatalogConfig struct {
	// Path to a YAML catalog. Empty selects the catalog compiled into the binary.
	Path string
}

type CacheConfig struct {
	Size int
	TTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "pricing-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Log: LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		Page: PageConfig{
			Title:        getEnv("PAGE_TITLE", "VaeDeFi SmartSignals Pricing"),
			Description:  getEnv("PAGE_DESCRIPTION", "Choose the signals that are right for you!"),
			Heading:      getEnv("PAGE_HEADING", "SmartSignal Pricing Plans"),
			Subheading:   getEnv("PAGE_SUBHEADING", "Choose the signals that are right for you!"),
			DefaultTheme: strings.ToLower(getEnv("DEFAULT_THEME", "system")),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Cache: CacheConfig{
			Size: getIntEnv("PAGE_CACHE_SIZE", 64),
			TTL:  getDurationEnv("PAGE_CACHE_TTL_MINUTES", 60*time.Minute),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
