package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	GinMode      string
	DatabaseURL  string
	EnableDB     bool
	SQLitePath   string
	CORSOrigins  []string
	MaxBodyBytes int64

	SessionSecret []byte
	SessionTTL    time.Duration
}

// Load reads the environment, after applying a .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		CORSOrigins: csv(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "8h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration: %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		cfg.SessionSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.SessionSecret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		log.Println("SESSION_SECRET not set; sessions will not survive a restart")
	}

	return cfg, nil
}

// AccountStore names the account backend selected by the config.
func (c *Config) AccountStore() string {
	switch {
	case c.EnableDB:
		return "postgres"
	case c.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func csv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
