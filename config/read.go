package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Alijeyrad/contact_relay/pkg/constants"
)

// legacyEnv maps config keys to the bare environment names the relay has
// always been deployed with. RELAY_* names take precedence.
var legacyEnv = map[string]string{
	"server.port":               "PORT",
	"server.cors.allow_origins": "ALLOWED_ORIGINS",
	"email.smtp.username":       "EMAIL_USER",
	"email.smtp.password":       "EMAIL_PASS",
	"email.recipient":           "RECIPIENT_EMAIL",
	"verification.access_key":   "MAILBOXLAYER_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "production")
	v.SetDefault("server.proxy_header", "")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.cors.allow_origins", []string{})
	v.SetDefault("server.cors.allow_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("server.cors.allow_headers", []string{"Content-Type"})
	v.SetDefault("server.cors.max_age_seconds", 600)

	v.SetDefault("email.enabled", true)
	v.SetDefault("email.from", "")
	v.SetDefault("email.recipient", "")
	v.SetDefault("email.smtp.host", "smtp.gmail.com")
	v.SetDefault("email.smtp.port", 465)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout_seconds", 10)

	v.SetDefault("verification.base_url", "https://apilayer.net/api/check")
	v.SetDefault("verification.access_key", "")
	v.SetDefault("verification.min_score", 0.3)
	v.SetDefault("verification.timeout_seconds", 10)
	v.SetDefault("verification.require_smtp_check", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max", 5)
	v.SetDefault("rate_limit.window_seconds", 15*60)
	v.SetDefault("rate_limit.strategy", "fixed")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("redis.read_timeout_seconds", 3)
	v.SetDefault("redis.write_timeout_seconds", 3)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.ServiceName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.otlp_insecure", false)
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", false)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.stdout", true)
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "logs/relay.log")
	v.SetDefault("logging.file.max_size_mb", 50)
	v.SetDefault("logging.file.max_backups", 5)
	v.SetDefault("logging.file.max_age_days", 28)
	v.SetDefault("logging.file.compress", true)
}

func ReadConfig(configPath string) (*Config, error) {
	// A .env next to the config file is optional; real env vars win.
	if err := godotenv.Load(filepath.Join(configPath, constants.EnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// e.g. RELAY_EMAIL_RECIPIENT overrides email.recipient
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnv {
		envKey := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, name); err != nil {
			return nil, fmt.Errorf("error binding env %s: %w", name, err)
		}
	}

	// The config file is optional: containers configure purely through env.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}
