package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is loaded once at process start
// and passed explicitly to the components that need it.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBLogQueries bool

	// JWT
	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	// Gemini
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	AIRequestTimeout time.Duration
	MaxPhotoBytes    int64

	// Events
	AMQPURL      string
	AMQPExchange string

	// AIEnabled is true when a Gemini API key is present. Computed once in Load.
	AIEnabled bool
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "budgetbuddy"),
		DBPassword:   getEnv("DB_PASSWORD", "budgetbuddy"),
		DBName:       getEnv("DB_NAME", "budgetbuddy"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		DBLogQueries: getEnv("DB_LOG_QUERIES", "false") == "true",

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		GeminiAPIKey:  os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budgetbuddy.events"),
	}

	var err error
	if cfg.JWTAccessTTL, err = getDuration("JWT_ACCESS_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTRefreshTTL, err = getDuration("JWT_REFRESH_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AIRequestTimeout, err = getDuration("AI_REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	maxBytes := getEnv("MAX_PHOTO_BYTES", "5242880")
	cfg.MaxPhotoBytes, err = strconv.ParseInt(maxBytes, 10, 64)
	if err != nil || cfg.MaxPhotoBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_PHOTO_BYTES value %q", maxBytes)
	}

	cfg.AIEnabled = cfg.GeminiAPIKey != ""
	return cfg, nil
}

// DSN returns the PostgreSQL connection string used by GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrateURL returns the postgres:// URL form used by golang-migrate.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}
