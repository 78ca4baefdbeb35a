// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Record store backend: "memory" or "mongo"
	RecordBackend string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (audit log)
	PostgresURI string
	AuditCap    int

	// Data sourcing
	SourceMode  string // "local" or "remote"
	SyncPolicy  string // "none", "besteffort" or "retry"
	SyncRetries int
	SyncBackoff time.Duration

	// Urgent-record background sweep
	SweepInterval time.Duration

	// Status-change notification poll
	NotifyInterval time.Duration

	// WorldTracer bridge
	TracerBaseURL      string
	TracerAPIKey       string
	TracerClientID     string
	TracerClientSecret string
	TracerTokenURL     string
	TracerTimeout      time.Duration
	StationCode        string
	AgentID            string
	AirlineCode        string
	TracerSimulate     bool

	// Gemini
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		RecordBackend: getEnv("RECORD_BACKEND", "memory"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "baggage"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),
		AuditCap:    getEnvAsInt("AUDIT_CAP", 5000),

		SourceMode:  getEnv("SOURCE_MODE", "local"),
		SyncPolicy:  getEnv("SYNC_POLICY", "besteffort"),
		SyncRetries: getEnvAsInt("SYNC_RETRIES", 3),
		SyncBackoff: time.Duration(getEnvAsInt("SYNC_BACKOFF", 2)) * time.Second,

		SweepInterval: time.Duration(getEnvAsInt("SWEEP_INTERVAL", 60)) * time.Second,

		NotifyInterval: time.Duration(getEnvAsInt("NOTIFY_INTERVAL", 10)) * time.Second,

		TracerBaseURL:      getEnv("TRACER_BASE_URL", ""),
		TracerAPIKey:       getEnv("TRACER_API_KEY", ""),
		TracerClientID:     getEnv("TRACER_CLIENT_ID", ""),
		TracerClientSecret: getEnv("TRACER_CLIENT_SECRET", ""),
		TracerTokenURL:     getEnv("TRACER_TOKEN_URL", ""),
		TracerTimeout:      time.Duration(getEnvAsInt("TRACER_TIMEOUT", 30)) * time.Second,
		StationCode:        getEnv("STATION_CODE", "JED"),
		AgentID:            getEnv("AGENT_ID", "SYSTEM"),
		AirlineCode:        getEnv("AIRLINE_CODE", "SV"),
		TracerSimulate:     getEnvAsBool("TRACER_SIMULATE", true),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
