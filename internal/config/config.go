package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/conn4/internal/domain"
)

type Config struct {
	Port            string
	Environment     string
	AllowedOrigins  []string
	FrontendURL     string
	BoardRows       int
	BoardCols       int
	MaxBoardRows    int
	MaxBoardCols    int
	RedisURL        string
	RedisPassword   string
	SessionTTL      time.Duration
	FinishedTTL     time.Duration
	CleanupInterval time.Duration
	JWTSecret       string
	StaticDir       string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:8080")
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:            port,
		Environment:     environment,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		BoardRows:       GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		BoardCols:       GetEnvAsInt("BOARD_COLS", domain.DefaultCols),
		MaxBoardRows:    GetEnvAsInt("BOARD_MAX_ROWS", domain.DefaultMaxRows),
		MaxBoardCols:    GetEnvAsInt("BOARD_MAX_COLS", domain.DefaultMaxCols),
		RedisURL:        GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		SessionTTL:      GetEnvAsDuration("SESSION_TTL_MINUTES", 24*60) * time.Minute,
		FinishedTTL:     GetEnvAsDuration("FINISHED_TTL_MINUTES", 60) * time.Minute,
		CleanupInterval: GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 60) * time.Minute,
		JWTSecret:       GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		StaticDir:       GetEnv("STATIC_DIR", "./static"),
	}
}

// Validate checks the settings that would otherwise fail at the first game.
func (c *Config) Validate() error {
	if c.BoardRows < domain.MinRows || c.BoardCols < domain.MinCols {
		return fmt.Errorf("board must be at least %dx%d, got %dx%d",
			domain.MinRows, domain.MinCols, c.BoardRows, c.BoardCols)
	}
	if c.BoardRows > c.MaxBoardRows || c.BoardCols > c.MaxBoardCols {
		return fmt.Errorf("board %dx%d exceeds the %dx%d limit",
			c.BoardRows, c.BoardCols, c.MaxBoardRows, c.MaxBoardCols)
	}
	if c.SessionTTL <= 0 || c.FinishedTTL <= 0 || c.CleanupInterval <= 0 {
		return fmt.Errorf("session TTLs and cleanup interval must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count; the caller multiplies by the unit.
func GetEnvAsDuration(key string, defaultValue int) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue))
}
