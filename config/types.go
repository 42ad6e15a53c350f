package config

import "time"

type Config struct {
	Server        ServerConfig        `mapstructure:"server" yaml:"server"`
	Email         EmailConfig         `mapstructure:"email" yaml:"email"`
	Verification  VerificationConfig  `mapstructure:"verification" yaml:"verification"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit" yaml:"rate_limit"`
	Redis         RedisConfig         `mapstructure:"redis" yaml:"redis"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port" yaml:"port"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Environment    string     `mapstructure:"environment" yaml:"environment"`
	ProxyHeader    string     `mapstructure:"proxy_header" yaml:"proxy_header"`
	TrustedProxies []string   `mapstructure:"trusted_proxies" yaml:"trusted_proxies"`
	CORS           CORSConfig `mapstructure:"cors" yaml:"cors"`
}

type CORSConfig struct {
	AllowOrigins  []string `mapstructure:"allow_origins" yaml:"allow_origins"`
	AllowMethods  []string `mapstructure:"allow_methods" yaml:"allow_methods"`
	AllowHeaders  []string `mapstructure:"allow_headers" yaml:"allow_headers"`
	MaxAgeSeconds int      `mapstructure:"max_age_seconds" yaml:"max_age_seconds"`
}

type EmailConfig struct {
	Enabled   bool       `mapstructure:"enabled" yaml:"enabled"`
	From      string     `mapstructure:"from" yaml:"from"`
	Recipient string     `mapstructure:"recipient" yaml:"recipient"`
	SMTP      SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host" yaml:"host"`
	Port           int    `mapstructure:"port" yaml:"port"`
	Username       string `mapstructure:"username" yaml:"username"`
	Password       string `mapstructure:"password" yaml:"password"`
	UseTLS         bool   `mapstructure:"use_tls" yaml:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type VerificationConfig struct {
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	AccessKey      string  `mapstructure:"access_key" yaml:"access_key"`
	MinScore       float64 `mapstructure:"min_score" yaml:"min_score"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	// RequireSMTPCheck rejects addresses whose mailbox check failed even
	// when format, MX and score pass.
	RequireSMTPCheck bool `mapstructure:"require_smtp_check" yaml:"require_smtp_check"`
}

type RateLimitConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
	Max           int    `mapstructure:"max" yaml:"max"`
	WindowSeconds int    `mapstructure:"window_seconds" yaml:"window_seconds"`
	Strategy      string `mapstructure:"strategy" yaml:"strategy"` // fixed, sliding
}

// Window returns the limiter window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr" yaml:"addr"`
	DB                  int    `mapstructure:"db" yaml:"db"`
	Username            string `mapstructure:"username" yaml:"username"`
	Password            string `mapstructure:"password" yaml:"password"`
	PoolSize            int    `mapstructure:"pool_size" yaml:"pool_size"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds" yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled"`
	ServiceName    string        `mapstructure:"service_name" yaml:"service_name"`
	ServiceVersion string        `mapstructure:"service_version" yaml:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure" yaml:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate" yaml:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type LoggingConfig struct {
	Level  string        `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string        `mapstructure:"format" yaml:"format"` // text, json
	Stdout bool          `mapstructure:"stdout" yaml:"stdout"`
	File   FileLogConfig `mapstructure:"file" yaml:"file"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Path       string `mapstructure:"path" yaml:"path"`               // e.g. "logs/relay.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}
