// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the server and CLI read at start-up.
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins string
	ContentFile string

	RateProvider    string
	RateAPIURL      string
	RateBotURL      string
	RateHTTPTimeout time.Duration
	RateCacheTTL    time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AdminJWTSecret string
	AdminTokenTTL  time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found")
	}
}

// Load reads the process environment into a Config.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "5001"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		ContentFile: GetEnv("CONTENT_FILE", ""),

		RateProvider:    strings.ToLower(GetEnv("RATE_PROVIDER", "fixed")),
		RateAPIURL:      GetEnv("RATE_API_URL", ""),
		RateBotURL:      GetEnv("RATE_BOT_URL", "https://rate.bot.com.tw/xrt?Lang=zh-TW"),
		RateHTTPTimeout: GetDurationEnv("RATE_HTTP_TIMEOUT", 10*time.Second),
		RateCacheTTL:    GetDurationEnv("RATE_CACHE_TTL", 10*time.Minute),

		RedisHost:     GetEnv("REDIS_HOST", ""),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),

		DBHost:     GetEnv("DB_HOST", ""),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "petquote"),

		AdminJWTSecret: GetEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:  GetDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
	}
}

// RedisEnabled reports whether a Redis host was configured.
func (c Config) RedisEnabled() bool { return c.RedisHost != "" }

// DatabaseEnabled reports whether a PostgreSQL host was configured.
func (c Config) DatabaseEnabled() bool { return c.DBHost != "" }

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool { return c.Env == "production" }

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
