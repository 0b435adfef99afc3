// Package config loads environment-provided configuration.
package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback
func GetEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// Config holds everything the server entrypoint needs to wire dependencies.
type Config struct {
	ServerPort string

	RunpodBaseURL    string
	RunpodEndpointID string
	RunpodAPIKey     string
	RunpodTimeout    time.Duration

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AudioStorageType string
	AudioStoragePath string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		ServerPort: GetEnv("SERVER_PORT", "8080"),

		RunpodBaseURL:    GetEnv("RUNPOD_BASE_URL", "https://api.runpod.ai/v2"),
		RunpodEndpointID: GetEnv("RUNPOD_ENDPOINT_ID", ""),
		RunpodAPIKey:     GetEnv("RUNPOD_API_KEY", ""),
		RunpodTimeout:    time.Duration(GetEnvInt("RUNPOD_TIMEOUT", 600)) * time.Second,

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnvInt("DB_PORT", 5432),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "sunbird"),

		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),

		AudioStorageType: GetEnv("AUDIO_STORAGE_TYPE", "local"),
		AudioStoragePath: GetEnv("AUDIO_STORAGE_PATH", "/data/audio"),
	}
}
