package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment. A local
// .env file is honored when present.
type Config struct {
	Port        int
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ReceiptBucket  string
	PhotoBucket    string

	CognitoJWKSURL string
	JWTSecret      string

	EmailRelayURL string
	EmailFrom     string

	MigrationsDir string
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           envInt("PORT", 8080),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		MinioEndpoint:  envString("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: envString("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: envString("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		ReceiptBucket:  envString("RECEIPT_BUCKET", "rentiva-receipts"),
		PhotoBucket:    envString("PHOTO_BUCKET", "rentiva-photos"),
		CognitoJWKSURL: os.Getenv("COGNITO_JWKS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		EmailRelayURL:  os.Getenv("EMAIL_RELAY_URL"),
		EmailFrom:      envString("EMAIL_FROM", "no-reply@rentiva.io"),
		MigrationsDir:  envString("MIGRATIONS_DIR", "migrations"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.CognitoJWKSURL == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("either COGNITO_JWKS_URL or JWT_SECRET must be set")
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
