package config

import (
	"os"
	"strings"
)

type Config struct {
	// Server
	Port    string
	GinMode string

	// Database
	DatabaseDSN string

	// Redis
	RedisURL string

	// MinIO
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Meilisearch
	MeiliURL    string
	MeiliAPIKey string

	// JWT
	JWTSecret       string
	JWTAccessExpiry string

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DatabaseDSN: getEnv("DATABASE_DSN", "qualitrack:qualitrack_dev@tcp(localhost:3306)/qualitrack?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisURL: getEnv("REDIS_URL", "redis://:redis_dev@localhost:6379/0"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "evidence"),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		MeiliURL:    getEnv("MEILI_URL", "http://localhost:7700"),
		MeiliAPIKey: getEnv("MEILI_API_KEY", "dev_master_key_change_in_production"),

		JWTSecret:       getEnv("JWT_SECRET", "development_secret"),
		JWTAccessExpiry: getEnv("JWT_ACCESS_EXPIRY", "24h"),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
