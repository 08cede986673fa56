package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the portal server
type Config struct {
	Port              string
	Origin            string
	Environment       string
	SessionSecret     string
	SessionTTLMinutes int
	StaticDir         string
	UploadDir         string
	MaxUploadMB       int
	LogLevel          string
	AutoMigrate       bool
	Database          DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))

	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "doctor_portal"),
	}

	switch driver {
	case "mysql":
		// clientFoundRows makes RowsAffected count matched rows, so an
		// update that changes nothing is not mistaken for a missing row.
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	case "postgres":
		dbConfig.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbConfig.Host, dbConfig.Port, dbConfig.Username, dbConfig.Password, dbConfig.Name,
			getEnv("DB_SSLMODE", "disable"))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %w", err)
	}

	maxUpload, err := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		Origin:            getEnv("ORIGIN", "http://localhost:5000"),
		Environment:       getEnv("APP_ENV", "development"),
		SessionSecret:     getEnv("SESSION_SECRET", "default_session_secret"),
		SessionTTLMinutes: sessionTTL,
		StaticDir:         getEnv("STATIC_DIR", "./static"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadMB:       maxUpload,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AutoMigrate:       autoMigrate,
		Database:          dbConfig,
	}

	if cfg.IsProduction() && cfg.SessionSecret == "default_session_secret" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return cfg, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
