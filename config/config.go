package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string
	// DATABASE_URL selects the store by scheme: postgres:// or mongodb://
	DBUrl  string
	DBName string
	// Admin credentials (single operator account)
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // bcrypt, takes precedence over AdminPassword
	SessionSecret     string
	SessionTTL        time.Duration
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	SMTPSecure     bool // implicit TLS (port 465) instead of STARTTLS
	ContactEmailTo string
	// CORS / media host
	CORSOrigins    []string
	MediaCloudName string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitLoginThreshold   int
	FailedLoginBlockMinutes   int
	FailedLoginMaxAttempts    int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment wins in deployments
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		DBUrl:    getEnv("DATABASE_URL", getEnv("MONGODB_URI", "")),
		DBName:   getEnv("DATABASE_NAME", "portfolio"),
		// Admin
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", getEnv("NEXTAUTH_SECRET", "")),
		SessionTTL:        getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		SMTPSecure:     getEnvBool("SMTP_SECURE", false),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// CORS / media host
		CORSOrigins:    splitList(getEnv("CORS_ORIGIN", "*")),
		MediaCloudName: getEnv("MEDIA_CLOUD_NAME", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitLoginThreshold:   getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		FailedLoginBlockMinutes:   getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:    getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
	}

	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}
	if cfg.ContactEmailTo == "" {
		cfg.ContactEmailTo = cfg.SMTPUsername
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Cache and rate limiting will use in-memory fallback.")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Println("WARNING: ADMIN_PASSWORD / ADMIN_PASSWORD_HASH not set. Admin login is disabled.")
	}

	return cfg, nil
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local" || c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s", "720h")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
