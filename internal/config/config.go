package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	MetricsPort string
	DatabaseURL string
	RedisAddr   string
	RedisDB     int
	FeedAddr    string
	LatestTTL   time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "5000"),
		MetricsPort: getEnv("METRICS_PORT", "9000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/simtrack"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		FeedAddr:    getEnv("FEED_ADDR", ""),
		LatestTTL:   time.Duration(getEnvInt("LATEST_TTL_MIN", 60)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
