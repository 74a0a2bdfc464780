package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App     *AppConfig
	Oracles *OracleConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	Debug       bool
	LogLevel    string
	LogFormat   string
}

// OracleConfig locates the external AI collaborators. Timeout applies to
// every collaborator call.
type OracleConfig struct {
	AnomalyURL   string
	GeofenceURL  string
	TriageURL    string
	AnalyticsURL string
	Timeout      time.Duration
}

func Load() (*Config, error) {
	config := &Config{
		App:     loadAppConfig(),
		Oracles: loadOracleConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "SafeTour"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 4000),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

func loadOracleConfig() *OracleConfig {
	return &OracleConfig{
		AnomalyURL:   getEnv("AI_ANOMALY_URL", "http://localhost:5001/detect_anomaly"),
		GeofenceURL:  getEnv("AI_GEOFENCE_URL", "http://localhost:5003/get_updated_geofences"),
		TriageURL:    getEnv("AI_NLP_URL", "http://localhost:5002/classify_incident"),
		AnalyticsURL: getEnv("AI_ANALYTICS_URL", "http://localhost:5004/summary"),
		Timeout:      getEnvAsDuration("AI_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
