package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	LogLevel     string
	DatabasePath string

	// Trade booking system. An empty base URL means the system is not
	// configured for this environment and deterministic fallback data is
	// served instead (distinct from a configured system that errors).
	TradeAPIBaseURL string
	TradeAPITimeout time.Duration

	// Feed cache. An empty RedisAddr selects the in-memory cache.
	RedisAddr    string
	FeedCacheTTL time.Duration

	RateLimitBurst int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	tradeAPIBaseURL := getEnv("TRADE_API_BASE_URL", "")
	if tradeAPIBaseURL == "" {
		log.Println("WARNING: TRADE_API_BASE_URL not set. Booking-system queries will be served from the deterministic fallback generator.")
	}

	Cfg = &AppConfig{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabasePath:    getEnv("DATABASE_PATH", "./creditline.db"),
		TradeAPIBaseURL: tradeAPIBaseURL,
		TradeAPITimeout: getEnvAsDuration("TRADE_API_TIMEOUT", 20*time.Second),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		FeedCacheTTL:    getEnvAsDuration("FEED_CACHE_TTL", 15*time.Minute),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, TradeAPIConfigured=%t, RedisConfigured=%t",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.TradeAPIBaseURL != "", Cfg.RedisAddr != "")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
