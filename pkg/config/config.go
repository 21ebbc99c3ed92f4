package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Gemini   GeminiConfig
	Spotify  SpotifyConfig
	Auth     AuthConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// GeminiConfig holds Gemini API configuration. An empty key is allowed;
// the analysis client degrades to unavailable instead of failing startup.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// SpotifyConfig holds Spotify API credentials. Empty credentials are
// allowed; the music client degrades to no-match.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// Load loads configuration from environment variables. The JWT secret has
// no default: startup must fail fast when it is missing.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required but was empty")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "audiophile_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Mongo: MongoConfig{
			Host:     getEnv("MONGO_HOST", "localhost"),
			Port:     getEnvAsInt("MONGO_PORT", 27017),
			User:     getEnv("MONGO_USER", "admin"),
			Password: getEnv("MONGO_PASSWORD", ""),
			Database: getEnv("MONGO_DB", "audiophile_db"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Spotify: SpotifyConfig{
			ClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
			ClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
			Market:       getEnv("SPOTIFY_MARKET", "TW"),
		},
		Auth: AuthConfig{
			JWTSecret:   secret,
			TokenExpiry: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoURI returns the MongoDB connection string
func (c *MongoConfig) MongoURI() string {
	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d/?authSource=admin", c.User, c.Password, c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
