// Package config loads application configuration from a .env file (if
// present) and environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	DBPath     string
	AuthToken  string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in
	// production). StorageBackend "filesystem" keeps objects on local disk.
	StorageBackend    string
	StoragePath       string
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string

	// Upload limits.
	MaxUploadBytes int64
	MaxImageWidth  int
	MaxImageHeight int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		ListenAddr: getEnv("PG_LISTEN_ADDR", ":8080"),
		DBPath:     getEnv("PG_DB_PATH", "/data/db/assets.db"),
		AuthToken:  getEnv("PG_AUTH_TOKEN", ""),

		StorageBackend:    getEnv("PG_STORAGE_BACKEND", "minio"),
		StoragePath:       getEnv("PG_STORAGE_PATH", "/data/images"),
		StorageEndpoint:   getEnv("PG_STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("PG_STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("PG_STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("PG_STORAGE_BUCKET", "images"),
		StorageUseSSL:     getEnv("PG_STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("PG_STORAGE_PUBLIC_BASE", "http://localhost:9000/images"),

		MaxUploadBytes: int64(getEnvInt("PG_MAX_UPLOAD_BYTES", 10<<20)),
		MaxImageWidth:  getEnvInt("PG_MAX_IMAGE_WIDTH", 5000),
		MaxImageHeight: getEnvInt("PG_MAX_IMAGE_HEIGHT", 5000),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
