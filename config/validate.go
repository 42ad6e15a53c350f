package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks values that would make the server misbehave at startup.
// A missing recipient or verification key is deliberately allowed here; the
// contact pipeline reports those per request.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}

	if c.Email.Enabled && c.Email.SMTP.Host == "" {
		errs = append(errs, errors.New("email.smtp.host is required when email is enabled"))
	}
	if c.Email.SMTP.Port <= 0 || c.Email.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("email.smtp.port out of range: %d", c.Email.SMTP.Port))
	}

	if c.Verification.MinScore < 0 || c.Verification.MinScore > 1 {
		errs = append(errs, fmt.Errorf("verification.min_score must be within [0, 1], got %v", c.Verification.MinScore))
	}
	if c.Verification.BaseURL == "" {
		errs = append(errs, errors.New("verification.base_url is required"))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Max <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.max must be positive, got %d", c.RateLimit.Max))
		}
		if c.RateLimit.WindowSeconds <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.window_seconds must be positive, got %d", c.RateLimit.WindowSeconds))
		}
		switch strings.ToLower(c.RateLimit.Strategy) {
		case "fixed", "sliding":
		default:
			errs = append(errs, fmt.Errorf("rate_limit.strategy must be fixed or sliding, got %q", c.RateLimit.Strategy))
		}
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}
