package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env  string
	Port string

	DBURL                 string
	DBQueryTimeoutSeconds int

	SessionSecret      string
	SessionExpiryHours int

	LoginMaxAttempts          int
	LockoutBaseDelaySeconds   int
	LockoutMaxDelaySeconds    int
	LoginAttemptWindowMinutes int

	AuditBufferSize          int
	AuditWriteTimeoutSeconds int
}

func Load() *Config {
	return &Config{
		Env:                       getEnv("ENV", "development"),
		Port:                      getEnv("PORT", "8080"),
		DBURL:                     mustGetEnv("DB_URL"),
		DBQueryTimeoutSeconds:     getEnvAsInt("DB_QUERY_TIMEOUT_SECONDS", 5),
		SessionSecret:             mustGetEnv("SESSION_SECRET"),
		SessionExpiryHours:        getEnvAsInt("SESSION_EXPIRY_HOURS", 24),
		LoginMaxAttempts:          getEnvAsInt("LOGIN_MAX_ATTEMPTS", 3),
		LockoutBaseDelaySeconds:   getEnvAsInt("LOCKOUT_BASE_DELAY_SECONDS", 1),
		LockoutMaxDelaySeconds:    getEnvAsInt("LOCKOUT_MAX_DELAY_SECONDS", 60),
		LoginAttemptWindowMinutes: getEnvAsInt("LOGIN_ATTEMPT_WINDOW_MINUTES", 15),
		AuditBufferSize:           getEnvAsInt("AUDIT_BUFFER_SIZE", 256),
		AuditWriteTimeoutSeconds:  getEnvAsInt("AUDIT_WRITE_TIMEOUT_SECONDS", 5),
	}
}

// IsProduction controls production-only behavior such as the Secure cookie
// attribute.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
