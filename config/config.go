package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Scrape pipeline configuration
	ParseIngredients  bool
	IngredientWorkers int
	FetchTimeout      time.Duration
	UserAgent         string
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// LoadConfig reads .env and the process environment into a validated Config
func LoadConfig() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5000")
	v.SetDefault("HOST", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PARSE_INGREDIENTS", true)
	v.SetDefault("INGREDIENT_WORKERS", "1")
	v.SetDefault("FETCH_TIMEOUT", "0s")
	v.SetDefault("USER_AGENT", "alchemorsel-scraper/1.0")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	env := GetEnvironment()
	cfg := &Config{
		Environment:      env,
		ServerHost:       v.GetString("HOST"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		ParseIngredients: v.GetBool("PARSE_INGREDIENTS"),
		UserAgent:        v.GetString("USER_AGENT"),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if env.IsDevelopment() {
			cfg.LogFormat = "console"
		}
	}

	origins := v.GetString("ALLOWED_ORIGINS")
	if origins == "" && env.IsProduction() {
		origins = readSecret("allowed_origins")
	}
	cfg.AllowedOrigins = splitOrigins(origins)

	var errs []error
	var err error
	if cfg.ServerPort, err = strconv.Atoi(strings.TrimSpace(v.GetString("PORT"))); err != nil {
		errs = append(errs, ValidationError{Field: "PORT", Message: "must be an integer"})
	}
	if cfg.IngredientWorkers, err = strconv.Atoi(strings.TrimSpace(v.GetString("INGREDIENT_WORKERS"))); err != nil {
		errs = append(errs, ValidationError{Field: "INGREDIENT_WORKERS", Message: "must be an integer"})
	}
	if cfg.FetchTimeout, err = time.ParseDuration(v.GetString("FETCH_TIMEOUT")); err != nil {
		errs = append(errs, ValidationError{Field: "FETCH_TIMEOUT", Message: "must be a duration such as 10s"})
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT")); err != nil {
		errs = append(errs, ValidationError{Field: "SHUTDOWN_TIMEOUT", Message: "must be a duration such as 5s"})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// loadEnvFile loads the first .env found in the working directory, its
// parents, or the module root. Variables already set are not overridden.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
