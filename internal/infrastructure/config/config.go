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

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (airport reference data)
	PostgresURI string

	// Flight search service
	FlightsAPIURL   string
	FlightsAPIToken string

	// Notification delivery service
	NotifyServiceURL string
	NotifyToken      string

	// Poll scheduler
	CycleInterval         time.Duration
	MaxSamplesPerCycle    int
	InterCallDelay        time.Duration
	LookupMinInterval     time.Duration
	MaxConcurrentTrackers int
	// RemoveAfterAlert controls whether a tracker is disarmed after a
	// successful alert. Default false: the tracker stays active and will
	// alert again next cycle if the price is still at or below threshold.
	RemoveAfterAlert bool
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

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flightwatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		FlightsAPIURL:   getEnv("FLIGHTS_API_URL", ""),
		FlightsAPIToken: getEnv("FLIGHTS_API_TOKEN", ""),

		NotifyServiceURL: getEnv("NOTIFY_SERVICE_URL", ""),
		NotifyToken:      getEnv("NOTIFY_TOKEN", ""),

		CycleInterval:         time.Duration(getEnvAsInt("CYCLE_INTERVAL_MINUTES", 360)) * time.Minute,
		MaxSamplesPerCycle:    getEnvAsInt("MAX_SAMPLES_PER_CYCLE", 5),
		InterCallDelay:        time.Duration(getEnvAsInt("INTER_CALL_DELAY_SECONDS", 2)) * time.Second,
		LookupMinInterval:     time.Duration(getEnvAsInt("LOOKUP_MIN_INTERVAL_MS", 500)) * time.Millisecond,
		MaxConcurrentTrackers: getEnvAsInt("MAX_CONCURRENT_TRACKERS", 4),
		RemoveAfterAlert:      getEnvAsBool("REMOVE_AFTER_ALERT", false),
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
