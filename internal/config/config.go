package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	ServerPort    string
	RedisURL      string
	Env           string
	RedisTTL      time.Duration
	SessionTTL    time.Duration
	TelegramToken string
}

func LoadConfig() Config {
	cacheTTL := getEnvAsDuration("REDIS_TTL", 5*time.Minute)
	sessionTTL := getEnvAsDuration("SESSION_TTL", 30*24*time.Hour)

	return Config{
		DBHost:        getEnv("DB_HOST", "postgres"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPass:        getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "goalboard"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", "redis:6379"),
		Env:           getEnv("ENV", "dev"),
		RedisTTL:      cacheTTL,
		SessionTTL:    sessionTTL,
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
