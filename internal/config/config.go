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
	Port         string
	AllowOrigins []string
	LogLevel     string

	// Optional mirror of all log output to a Logstash TCP input.
	LogstashTCPAddr string

	// General key-value persistence. "redis" (default) or "postgres".
	StorageDriver string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	// Secret the secure store derives its encryption key from.
	SecureStoreSecret string

	// Upstream identity API.
	AuthBaseURL      string
	AuthTimeout      time.Duration
	AuthTokenTTLMins int

	// Scheme the host environment reports when the theme mode is "system".
	SystemColorScheme string

	// Avatar cache; disabled when the endpoint is empty.
	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MinIOBucketAvatar string
	MinIOPublicURL    string
	AvatarMaxBytes    int64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	driver := strings.ToLower(getenv("STORAGE_DRIVER", "redis"))
	if driver != "redis" && driver != "postgres" {
		panic("STORAGE_DRIVER must be redis or postgres, got " + driver)
	}

	databaseURL := getenv("DATABASE_URL", "")
	if driver == "postgres" && databaseURL == "" {
		panic("missing env: DATABASE_URL")
	}

	redisDB := 0
	if v, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil && v >= 0 {
		redisDB = v
	}

	authTimeout := 10 * time.Second
	if v, err := time.ParseDuration(getenv("AUTH_TIMEOUT", "10s")); err == nil && v > 0 {
		authTimeout = v
	}

	tokenTTL := 30
	if v, err := strconv.Atoi(getenv("AUTH_TOKEN_TTL_MINS", "30")); err == nil && v > 0 {
		tokenTTL = v
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	return Config{
		Port:              getenv("PORT", "8080"),
		AllowOrigins:      splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogstashTCPAddr:   getenv("LOGSTASH_TCP_ADDR", ""),
		StorageDriver:     driver,
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		RedisDB:           redisDB,
		DatabaseURL:       databaseURL,
		SecureStoreSecret: must("SECURE_STORE_SECRET"),
		AuthBaseURL:       getenv("AUTH_BASE_URL", "https://dummyjson.com"),
		AuthTimeout:       authTimeout,
		AuthTokenTTLMins:  tokenTTL,
		SystemColorScheme: getenv("SYSTEM_COLOR_SCHEME", "light"),
		MinIOEndpoint:     getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:    getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:    getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketAvatar: getenv("MINIO_BUCKET_AVATARS", "vistago-avatars"),
		MinIOPublicURL:    getenv("MINIO_PUBLIC_URL", ""),
		AvatarMaxBytes:    avatarMax,
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
