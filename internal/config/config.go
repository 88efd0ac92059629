package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OCR      OCRConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret              string
	AccessTokenDuration time.Duration
	Issuer              string
}

// OCRConfig points at the external text-extraction engine. The engine is an
// opaque collaborator: image in, raw text out.
type OCRConfig struct {
	EndpointURL    string
	RequestTimeout time.Duration
	MaxImageBytes  int64
}

type SecurityConfig struct {
	BCryptCost         int
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "expenseflow"),
			Password:        getEnv("DB_PASSWORD", "expenseflow"),
			Name:            getEnv("DB_NAME", "expenseflow"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:              getEnv("JWT_SECRET", ""),
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_DURATION", 15*time.Minute),
			Issuer:              getEnv("JWT_ISSUER", "expenseflow"),
		},
		OCR: OCRConfig{
			EndpointURL:    getEnv("OCR_ENDPOINT_URL", "http://localhost:8081/ocr"),
			RequestTimeout: getDurationEnv("OCR_REQUEST_TIMEOUT", 30*time.Second),
			MaxImageBytes:  int64(getIntEnv("OCR_MAX_IMAGE_BYTES", 10*1024*1024)),
		},
		Security: SecurityConfig{
			BCryptCost:         getIntEnv("BCRYPT_COST", 12),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}

	if config.JWT.Secret == "" {
		if config.Server.Environment == "development" {
			config.JWT.Secret = "dev-only-insecure-secret"
			log.Println("WARNING: JWT_SECRET not set, using insecure development secret")
		} else {
			log.Fatal("JWT_SECRET must be set outside development")
		}
	}

	return config
}

// DSN builds the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return parsed
}
