// Package config loads service settings from the environment and optional
// dotenv files.
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
	Addr            string
	BooksFile       string
	LogLevel        string
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxBodyBytes    int64
	EnableHSTS      bool
	ShutdownTimeout time.Duration
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// environment win over both files.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration from the environment, applying defaults for
// unset variables.
func Load() (Config, error) {
	LoadEnvFiles()

	cfg := Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		BooksFile:      getEnv("BOOKS_FILE", "library.json"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}
	if cfg.EnableHSTS, err = strconv.ParseBool(getEnv("ENABLE_HSTS", "false")); err != nil {
		return Config{}, fmt.Errorf("ENABLE_HSTS: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
