package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks a loaded configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []error

	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "ALLOWED_ORIGINS", Message: "is required"})
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "ALLOWED_ORIGINS",
				Message: fmt.Sprintf("origin %q must be * or an http(s) origin", origin),
			})
		}
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		errs = append(errs, ValidationError{Field: "PORT", Message: fmt.Sprintf("%d is out of range 1-65535", cfg.ServerPort)})
	}
	if cfg.IngredientWorkers < 1 {
		errs = append(errs, ValidationError{Field: "INGREDIENT_WORKERS", Message: "must be at least 1"})
	}
	if cfg.FetchTimeout < 0 {
		errs = append(errs, ValidationError{Field: "FETCH_TIMEOUT", Message: "must not be negative"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, ValidationError{Field: "SHUTDOWN_TIMEOUT", Message: "must not be negative"})
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("%q must be json or console", cfg.LogFormat)})
	}

	return errors.Join(errs...)
}
