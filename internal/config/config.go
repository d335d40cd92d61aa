// Package config reads the storefront configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Port the storefront listens on.
	Port string
	// StoreAPIURL is the base URL of the remote TechStore REST API.
	StoreAPIURL string
	// KafkaBrokers enables checkout event publishing when non-empty.
	KafkaBrokers []string
	// LogLevel is a logrus level name.
	LogLevel string
}

func Load() Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("STOREFRONT_PORT", "8080"),
		StoreAPIURL: getEnv("STORE_API_URL", "http://localhost:8082"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

// ParseLevel maps the configured level name to a logrus level, falling back
// to info on garbage.
func (c Config) ParseLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
