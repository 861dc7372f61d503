package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Environment: development, test, ci, or production
	AppEnv string

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// RabbitMQ configuration (empty disables event publishing)
	RabbitMQURL string

	// S3 invoice archive (empty bucket disables archiving)
	S3Bucket  string
	AWSRegion string

	// Groq completion API
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string

	// Tavily search API
	TavilyAPIKey      string
	TavilyAPIURL      string
	TavilySearchDepth string
	TavilyDomains     []string
	TavilyMaxResults  int

	// Fruit/vegetable items older than this many days are reported as expiring
	FoodExpiryDays int
}

// LoadConfig creates a new Config instance with values from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8000"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "recipe_ai"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		S3Bucket:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqAPIURL: getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:  getEnv("GROQ_MODEL", "gemma2-9b-it"),

		TavilyAPIKey:      os.Getenv("TAVILY_API_KEY"),
		TavilyAPIURL:      getEnv("TAVILY_API_URL", "https://api.tavily.com/search"),
		TavilySearchDepth: getEnv("TAVILY_SEARCH_DEPTH", "advanced"),
		TavilyDomains: splitAndTrim(getEnv("TAVILY_INCLUDE_DOMAINS",
			"food.com,allrecipes.com,epicurious.com,foodnetwork.com,bbcgoodfood.com")),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	var err error
	if cfg.TavilyMaxResults, err = getEnvInt("TAVILY_MAX_RESULTS", 5); err != nil {
		return nil, err
	}
	if cfg.FoodExpiryDays, err = getEnvInt("FOOD_EXPIRY_DAYS", 5); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ValidateConfig checks that the configuration is internally consistent
func ValidateConfig(cfg *Config) error {
	switch cfg.AppEnv {
	case "development", "test", "ci", "production":
	default:
		return ValidationError{Field: "APP_ENV", Message: "must be one of development, test, ci, production"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return ValidationError{Field: "SERVER_PORT", Message: "must be numeric"}
	}
	if cfg.TavilyMaxResults < 1 {
		return ValidationError{Field: "TAVILY_MAX_RESULTS", Message: "must be at least 1"}
	}
	if cfg.FoodExpiryDays < 1 {
		return ValidationError{Field: "FOOD_EXPIRY_DAYS", Message: "must be at least 1"}
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
