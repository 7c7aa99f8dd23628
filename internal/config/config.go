package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment
type Config struct {
	Environment string
	Port        string

	// Database
	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string

	JWTSecret []byte

	// Optional services; empty means disabled
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	ElasticsearchURL string
	OTLPEndpoint     string
	TracingSampling  float64

	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel string
	LogFile  string

	// Default sizes for list disclosure
	DisclosureInitial int
	DisclosureStep    int

	CORSOrigins []string
}

// Load reads configuration from the environment, seeding it from .env when present.
// JWT_SECRET is required.
func Load() (*Config, error) {
	// A missing .env is normal in containers
	_ = godotenv.Load()

	cfg := &Config{
		Environment:       getEnvOrDefault("ENVIRONMENT", "development"),
		Port:              getEnvOrDefault("PORT", "8787"),
		DatabaseDriver:    strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "postgres")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPort:         getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		ElasticsearchURL:  os.Getenv("ELASTICSEARCH_URL"),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingSampling:   getEnvFloat("OTEL_SAMPLING_RATE", 1.0),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:           getEnvOrDefault("LOG_FILE", "travelbond.log"),
		DisclosureInitial: getEnvInt("DISCLOSURE_INITIAL", 3),
		DisclosureStep:    getEnvInt("DISCLOSURE_STEP", 3),
		CORSOrigins:       splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDatabaseURL(cfg.DatabaseDriver)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default
func (c *Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.DatabaseDriver != "postgres" && c.DatabaseDriver != "sqlite" {
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.DatabaseDriver)
	}
	if c.DisclosureInitial < 0 || c.DisclosureStep <= 0 {
		return fmt.Errorf("DISCLOSURE_INITIAL must be >= 0 and DISCLOSURE_STEP > 0 (got %d, %d)",
			c.DisclosureInitial, c.DisclosureStep)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// TracingEnabled reports whether an OTLP endpoint was configured
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// DatabaseFromEnv returns the driver and DSN Load would use, without requiring
// the rest of the server configuration. The operational commands use it.
func DatabaseFromEnv() (driver, dsn string) {
	_ = godotenv.Load()

	driver = strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "postgres"))
	dsn = os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = buildDatabaseURL(driver)
	}
	return driver, dsn
}

// buildDatabaseURL assembles a DSN from the individual DB_* variables
func buildDatabaseURL(driver string) string {
	if driver == "sqlite" {
		return getEnvOrDefault("DB_PATH", "travelbond.db")
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "travelbond")
	sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if val, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return val
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
