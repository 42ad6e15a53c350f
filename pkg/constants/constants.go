package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "RELAY"
	EnvFile      = ".env"

	ServiceName = "contact_relay"
)
