package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RabbitURL is optional; when empty the booking event publisher is disabled.
	RabbitURL string

	// AuthSecret verifies the identity provider's session tokens (HS256).
	AuthSecret string

	// WebhookSecret verifies signatures on identity lifecycle webhooks.
	WebhookSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "charter"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RabbitURL:     os.Getenv("RABBITMQ_URL"),
		AuthSecret:    getEnv("AUTH_SECRET", "dev-secret"),
		WebhookSecret: os.Getenv("IDENTITY_WEBHOOK_SECRET"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
