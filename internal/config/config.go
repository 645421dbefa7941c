package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    slog.Level
	CORSOrigins []string

	// Storage
	DatabaseURL string
	RedisURL    string

	// Auth
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Pagination
	DefaultPageLimit int
	MaxPageLimit     int

	// Seeding
	AdminEmail    string
	AdminPassword string
	SchoolName    string

	// Object storage for image uploads
	Minio MinioConfig

	// Event publishing (optional)
	KafkaBrokers []string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// LoadConfig reads configuration from the environment, with a best-effort
// .env load for local development. Required variables fail startup.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments configure the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:      splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiry:        parseDuration(getEnv("JWT_EXPIRES_IN", "24h"), 24*time.Hour),
		BcryptCost:       parseInt(getEnv("BCRYPT_COST", "12"), 12),
		DefaultPageLimit: parseInt(getEnv("PAGINATION_DEFAULT_LIMIT", "10"), 10),
		MaxPageLimit:     parseInt(getEnv("PAGINATION_MAX_LIMIT", "100"), 100),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@school.com"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "Admin123!"),
		SchoolName:       getEnv("SCHOOL_NAME", "My School"),
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "eduportal"),
			UseSSL:    parseBool(getEnv("MINIO_USE_SSL", "false")),
			PublicURL: os.Getenv("MINIO_PUBLIC_URL"),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing required environment variable: DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required environment variable: JWT_SECRET")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening
// (redacted 500 messages, gin release mode).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
