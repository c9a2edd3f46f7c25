package config

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Server configuration
	ServerPort  string
	Environment string
	LogLevel    string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis configuration
	RedisAddress string

	// JWT configuration
	JWTSecret string

	FrontendAddress string

	// Autosave timing
	AutosaveDebounce       time.Duration
	AutosaveRemoteInterval time.Duration
	AutosaveStatusWindow   time.Duration

	HistoryLimit       int
	WorkerPoolSize     int
	SessionIdleTimeout time.Duration
}

// Global application configuration
var AppConfig Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Find .env file
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// Try to find .env in parent directories
		envPath = filepath.Join("..", ".env")
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			envPath = filepath.Join("..", "..", ".env")
		}
	}

	// Load .env file if it exists
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Warn().Err(err).Msg("error loading .env file")
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = rand.Text() + rand.Text()
		log.Info().Msg("generated random JWT secret")
	}

	AppConfig = Config{
		ServerPort:             getEnv("PORT", "8080"),
		Environment:            getEnv("ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "signature_builder"),
		RedisAddress:           getEnv("REDIS_ADDRESS", "localhost:6379"),
		JWTSecret:              jwtSecret,
		FrontendAddress:        getEnv("FRONTEND_ADDRESS", "https://production-frontend.com"),
		AutosaveDebounce:       getDuration("AUTOSAVE_DEBOUNCE", 500*time.Millisecond),
		AutosaveRemoteInterval: getDuration("AUTOSAVE_REMOTE_INTERVAL", 10*time.Second),
		AutosaveStatusWindow:   getDuration("AUTOSAVE_STATUS_WINDOW", 2*time.Second),
		HistoryLimit:           getInt("HISTORY_LIMIT", 20),
		WorkerPoolSize:         getInt("WORKER_POOL_SIZE", 4),
		SessionIdleTimeout:     getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer, using default")
		return defaultValue
	}
	return n
}
