package config

import (
	"os"
	"strconv"
	"time"

	"codebreak/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Fixed-window API rate limiting.
	APIRateLimit  int
	APIRateWindow time.Duration

	// How long a leaderboard listing may be served from cache.
	LeaderboardTTL time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, with a .env file as a
// development convenience. DATABASE_URL is the only hard requirement.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	leaderboardTTL := 10 * time.Second
	if v := os.Getenv("LEADERBOARD_CACHE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leaderboardTTL = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		LeaderboardTTL: leaderboardTTL,
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
