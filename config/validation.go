package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minProductionSecretLen is the shortest session secret accepted in production
const minProductionSecretLen = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks that the gateway has what it needs to start
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.DatabaseURL == "" {
		errs = append(errs, ValidationError{Field: "DATABASE_URL", Message: "is required"})
	}

	if cfg.FrontendURL == "" {
		errs = append(errs, ValidationError{Field: "FRONTEND_URL", Message: "is required"})
	} else if u, err := url.Parse(cfg.FrontendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "FRONTEND_URL", Message: "must be an absolute origin such as http://localhost:3000"})
	}

	switch {
	case cfg.SessionSecret == "":
		errs = append(errs, ValidationError{Field: "SESSION_SECRET", Message: "is required"})
	case cfg.IsProduction() && len(cfg.SessionSecret) < minProductionSecretLen:
		errs = append(errs, ValidationError{
			Field:   "SESSION_SECRET",
			Message: fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLen),
		})
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "PORT", Message: "is required"})
	}
	if cfg.RateLimitMax <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_MAX", Message: "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
