package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Encoder  EncoderConfig
	Vector   VectorConfig
	Search   SearchConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey     string
	ExpiryMinutes int
}

// EncoderConfig points at the external embedding service. The service is a
// hard dependency: search requests are rejected when it is unreachable.
type EncoderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// VectorConfig points at the optional pre-built catalog index.
type VectorConfig struct {
	Enabled        bool
	URL            string
	APIKey         string
	CollectionName string
}

type SearchConfig struct {
	LimitPerSource         int
	SourceTimeout          time.Duration
	DownloadTimeout        time.Duration
	MaxConcurrentDownloads int
	MaxConcurrentAnalysis  int
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend    string
	MaxEntries int
	ImageTTL   time.Duration
	SearchTTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ShopLens API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shoplens"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET", ""),
			ExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 60),
		},
		Encoder: EncoderConfig{
			BaseURL: getEnv("ENCODER_BASE_URL", ""),
			APIKey:  getEnv("ENCODER_API_KEY", ""),
			Timeout: getEnvDuration("ENCODER_TIMEOUT", 30*time.Second),
		},
		Vector: VectorConfig{
			Enabled:        getEnvBool("VECTOR_ENABLED", false),
			URL:            getEnv("VECTOR_URL", ""),
			APIKey:         getEnv("VECTOR_API_KEY", ""),
			CollectionName: getEnv("VECTOR_COLLECTION", "products"),
		},
		Search: SearchConfig{
			LimitPerSource:         getEnvInt("SEARCH_LIMIT_PER_SOURCE", 20),
			SourceTimeout:          getEnvDuration("SEARCH_SOURCE_TIMEOUT", 15*time.Second),
			DownloadTimeout:        getEnvDuration("SEARCH_DOWNLOAD_TIMEOUT", 10*time.Second),
			MaxConcurrentDownloads: getEnvInt("SEARCH_MAX_CONCURRENT_DOWNLOADS", 20),
			MaxConcurrentAnalysis:  getEnvInt("SEARCH_MAX_CONCURRENT_ANALYSIS", 4),
		},
		Cache: CacheConfig{
			Backend:    getEnv("CACHE_BACKEND", "memory"),
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 10000),
			ImageTTL:   getEnvDuration("CACHE_IMAGE_TTL", 24*time.Hour),
			SearchTTL:  getEnvDuration("CACHE_SEARCH_TTL", time.Hour),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Encoder.BaseURL == "" {
		return nil, errors.New("missing encoder base url")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Vector.Enabled && cfg.Vector.URL == "" {
		return nil, errors.New("vector index enabled but missing vector url")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}
