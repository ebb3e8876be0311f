package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIUrl      string
	FrontendURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret        string
	JWTTokenDuration time.Duration

	// Admin seed account
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Asset store (S3-compatible)
	AssetS3Endpoint        string
	AssetS3Region          string
	AssetS3AccessKeyID     string
	AssetS3SecretAccessKey string
	AssetS3UsePathStyle    bool
	AssetBucket            string
	AssetPublicBaseURL     string

	// Local scratch storage for uploads in flight
	ScratchPath string

	// PDF rendering
	RenderTimeout time.Duration
	RenderScaleTo int

	// Upload limits
	UploadMaxImageSize int64
	UploadMaxPDFSize   int64

	// Security
	BcryptCost        int
	RateLimitRequests int
	RateLimitDuration time.Duration

	// CORS
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIUrl:      getEnv("API_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "bookhaven"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "bookhaven_db"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		DBTimeZone: getEnv("DB_TIMEZONE", "UTC"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		JWTTokenDuration: getEnvAsDuration("JWT_TOKEN_DURATION", "24h"),

		// Admin seed account
		AdminName:     getEnv("ADMIN_NAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@bookhaven.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		// Asset store
		AssetS3Endpoint:        getEnv("ASSET_S3_ENDPOINT", ""),
		AssetS3Region:          getEnv("ASSET_S3_REGION", "us-east-1"),
		AssetS3AccessKeyID:     getEnv("ASSET_S3_ACCESS_KEY_ID", ""),
		AssetS3SecretAccessKey: getEnv("ASSET_S3_SECRET_ACCESS_KEY", ""),
		AssetS3UsePathStyle:    getEnv("ASSET_S3_USE_PATH_STYLE", "true") == "true",
		AssetBucket:            getEnv("ASSET_BUCKET", "bookhaven-assets"),
		AssetPublicBaseURL:     getEnv("ASSET_PUBLIC_BASE_URL", ""),

		// Local scratch storage
		ScratchPath: getEnv("SCRATCH_PATH", "/tmp/bookhaven"),

		// PDF rendering
		RenderTimeout: getEnvAsDuration("RENDER_TIMEOUT", "5m"),
		RenderScaleTo: getEnvAsInt("RENDER_SCALE_TO", 1024),

		// Upload limits
		UploadMaxImageSize: getEnvAsInt64("UPLOAD_MAX_IMAGE_SIZE", 10*1024*1024),
		UploadMaxPDFSize:   getEnvAsInt64("UPLOAD_MAX_PDF_SIZE", 100*1024*1024),

		// Security
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration: getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods: getEnvAsSlice("ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders: getEnvAsSlice("ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
