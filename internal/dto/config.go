package dto

import (
	"encoding/base64"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL    string
	RabbitMQURL    string
	FirebaseKey    string
	HTTPAddress    string
	ActionCooldown time.Duration
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Infof("No .env file loaded: %v", err)
	}

	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		FirebaseKey:    os.Getenv("FIREBASE_KEY"),
		HTTPAddress:    envOrDefault("HTTP_ADDRESS", ":8080"),
		ActionCooldown: cooldownFromEnv(),
	}
}

func (c Config) DecodeFirebaseKey() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.FirebaseKey)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func cooldownFromEnv() time.Duration {
	raw := os.Getenv("ACTION_COOLDOWN_SECONDS")
	if raw == "" {
		return 5 * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		logrus.Errorf("Invalid ACTION_COOLDOWN_SECONDS %q, using default", raw)
		return 5 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
