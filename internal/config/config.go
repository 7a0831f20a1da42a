package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DatabaseURL is the restricted credential used by public read paths;
	// DatabaseAdminURL is the privileged one used by admin writes.
	DatabaseURL      string
	DatabaseAdminURL string

	AdminPasswordHash string
	AdminPasswordSalt string
	SessionSecret     string
	SessionTTL        time.Duration
	SecureCookies     bool

	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinIOBucketPhoto string
	MinIOPublicURL   string

	PhotoMaxBytes int64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	sessionTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("SESSION_TTL", "24h")); err == nil && v > 0 {
		sessionTTL = v
	}

	photoMax := int64(10 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("PHOTO_MAX_BYTES", "10485760"), 10, 64); err == nil && v > 0 {
		photoMax = v
	}

	return Config{
		Port:              getenv("PORT", "8080"),
		DatabaseURL:       must("DATABASE_URL"),
		DatabaseAdminURL:  getenv("DATABASE_ADMIN_URL", os.Getenv("DATABASE_URL")),
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),
		AdminPasswordSalt: must("ADMIN_PASSWORD_SALT"),
		SessionSecret:     must("SESSION_SECRET"),
		SessionTTL:        sessionTTL,
		SecureCookies:     getenv("SECURE_COOKIES", "true") == "true",
		AllowOrigins:      splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:   getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:     must("MINIO_ENDPOINT"),
		MinIOAccessKey:    must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:    must("MINIO_SECRET_KEY"),
		MinIOUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketPhoto:  getenv("MINIO_BUCKET_PHOTOS", "venue-photos"),
		MinIOPublicURL:    getenv("MINIO_PUBLIC_URL", ""),
		PhotoMaxBytes:     photoMax,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
