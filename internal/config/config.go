package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	CatalogPath  string
	DatabaseURL  string
	RedisURL     string
	DBPoolSize   int
	CacheTTL     time.Duration
	ShortTermCap int

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
	LLMTimeout  time.Duration
}

// Load configuration from env. DATABASE_URL and REDIS_URL are optional: when
// empty the service runs without long-term memory / response cache.
func Load() (*Config, error) {
	port := getEnvInt("PORT", 8080)
	catalogPath := getEnv("CATALOG_PATH", "products.json")
	dbURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	dbPoolSize := getEnvInt("DB_POOL_SIZE", 20)
	cacheTTL := getEnvDuration("CACHE_TTL", 10*time.Minute)
	shortTermCap := getEnvInt("SHORT_TERM_CAP", 100)

	llmEndpoint := getEnv("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions")
	llmAPIKey := getEnv("LLM_API_KEY", "")
	llmModel := getEnv("LLM_MODEL", "gpt-4o-mini")
	llmTimeout := getEnvDuration("LLM_TIMEOUT", 30*time.Second)

	return &Config{
		Port:         port,
		CatalogPath:  catalogPath,
		DatabaseURL:  dbURL,
		RedisURL:     redisURL,
		DBPoolSize:   dbPoolSize,
		CacheTTL:     cacheTTL,
		ShortTermCap: shortTermCap,
		LLMEndpoint:  llmEndpoint,
		LLMAPIKey:    llmAPIKey,
		LLMModel:     llmModel,
		LLMTimeout:   llmTimeout,
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return fallback
}
