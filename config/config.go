package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds every environment-driven setting of the portal.
type Config struct {
	ServerPort     string
	GinMode        string
	Environment    string
	DebugSQL       bool
	RequestTimeout time.Duration
	AllowedOrigins []string
	PortalBaseURL  string
	// LogFile is appended to alongside stdout; empty disables file logging.
	LogFile string

	DBDriver          string
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUsername        string
	DBPassword        string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret      string
	JWTExpireHours int

	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	SMTPSkipTLSVerify bool
	SMTPTimeout       time.Duration

	BulkStatusConcurrency int
}

// Load reads the configuration from the process environment.
// Call godotenv.Load before Load when a .env file should be honoured.
func Load() *Config {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", ""),
		Environment:    strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DebugSQL:       strings.EqualFold(getEnv("DEBUG_SQL", ""), "true"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		PortalBaseURL:  getEnv("PORTAL_BASE_URL", ""),
		LogFile:        getEnv("LOG_FILE", filepath.Join("logs", "placement-api.log")),

		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:            getEnv("DB_HOST", "127.0.0.1"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", "placement"),
		DBUsername:        getEnv("DB_USERNAME", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpireHours: getInt("JWT_EXPIRE_HOURS", 24),

		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPass:          getEnv("SMTP_PASS", ""),
		SMTPFrom:          getEnv("SMTP_FROM", ""), // e.g. "Placement Cell <no-reply@college.edu>"
		SMTPSkipTLSVerify: getEnv("SMTP_SKIP_TLS_VERIFY", "") == "1",
		SMTPTimeout:       getDuration("SMTP_TIMEOUT", 10*time.Second),

		BulkStatusConcurrency: getInt("BULK_STATUS_CONCURRENCY", 1),
	}

	if cfg.DBPort == "" {
		if cfg.DBDriver == "postgres" {
			cfg.DBPort = "5432"
		} else {
			cfg.DBPort = "3306"
		}
	}
	if cfg.BulkStatusConcurrency < 1 {
		cfg.BulkStatusConcurrency = 1
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is empty, tokens will be signed with an empty key")
	}

	return cfg
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
