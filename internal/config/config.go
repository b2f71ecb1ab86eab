package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	TwilioAuthToken string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBHost:          getEnv("DB_HOST", ""),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "pocket_chat"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		TwilioAuthToken: strings.TrimSpace(getEnv("TWILIO_AUTH_TOKEN", "")),
	}
}

// HasDatabase reports whether the store connection settings are present.
// The server still starts without them; the webhook then answers
// "Server not configured" instead of crashing at boot.
func (c *Config) HasDatabase() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
