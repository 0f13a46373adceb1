package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration

	StorageRoot string
	TrashRoot   string
	StateDir    string

	UndoCapacity int
	SearchBuffer int

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	JWTSecret         string
	JWTAccessTTL      time.Duration
	AdminPasswordHash string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		StorageRoot:             getEnv("STORAGE_ROOT", "./data"),
		TrashRoot:               getEnv("TRASH_ROOT", "./state/trash"),
		StateDir:                getEnv("STATE_DIR", "./state"),
		UndoCapacity:            getInt("UNDO_CAPACITY", 64),
		SearchBuffer:            getInt("SEARCH_BUFFER", 1024),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:            getDuration("JWT_ACCESS_TTL", 12*time.Hour),
		AdminPasswordHash:       strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if strings.TrimSpace(c.StorageRoot) == "" {
		return fmt.Errorf("STORAGE_ROOT cannot be empty")
	}

	if strings.TrimSpace(c.TrashRoot) == "" {
		return fmt.Errorf("TRASH_ROOT cannot be empty")
	}

	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("STATE_DIR cannot be empty")
	}

	if c.UndoCapacity <= 0 {
		return fmt.Errorf("UNDO_CAPACITY must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	// Auth is optional for a local daemon, but a password hash without a
	// signing secret cannot work.
	if c.AdminPasswordHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
