package redis

import (
	"testing"
	"time"

	"github.com/Alijeyrad/contact_relay/config"
)

func TestFromCentralConfig_Defaults(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{Addr: "cache:6379"})

	if cfg.Addr != "cache:6379" {
		t.Errorf("Addr = %q, want cache:6379", cfg.Addr)
	}
	if cfg.PoolSize != 10 {
		t.Errorf("PoolSize = %d, want 10", cfg.PoolSize)
	}
	if cfg.DialTimeout != 5*time.Second || cfg.ReadTimeout != 3*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Errorf("unexpected default timeouts: %+v", cfg)
	}
}

func TestFromCentralConfig_Overrides(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{
		Addr:                "cache:6379",
		DB:                  2,
		PoolSize:            4,
		DialTimeoutSeconds:  1,
		ReadTimeoutSeconds:  2,
		WriteTimeoutSeconds: 7,
	})

	if cfg.DB != 2 || cfg.PoolSize != 4 {
		t.Errorf("DB/PoolSize not carried over: %+v", cfg)
	}
	if cfg.DialTimeout != time.Second || cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 7*time.Second {
		t.Errorf("timeouts not carried over: %+v", cfg)
	}
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	if _, err := NewRedis(Config{}); err == nil {
		t.Error("expected error for empty addr")
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:1"
	cfg.DialTimeout = 500 * time.Millisecond
	cfg.ReadTimeout = 500 * time.Millisecond

	if _, err := NewRedis(cfg); err == nil {
		t.Error("expected ping failure for unreachable address")
	}
}
