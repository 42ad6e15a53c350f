package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/contact_relay/config"
	"github.com/Alijeyrad/contact_relay/pkg/email"
	"github.com/Alijeyrad/contact_relay/pkg/mailcheck"
	"github.com/Alijeyrad/contact_relay/pkg/observability"
	redispkg "github.com/Alijeyrad/contact_relay/pkg/redis"
)

// InfraModule provides the process-scoped clients shared by every request.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideVerificationClient),
	fx.Provide(ProvideOTel),
)

func ProvideLogger() *slog.Logger {
	return slog.Default()
}

// ProvideRedis returns a nil client when no address is configured; the
// limiter then keeps its counters in process memory.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, rate limiter uses in-memory storage")
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideVerificationClient(cfg *config.Config) *mailcheck.Client {
	c := mailcheck.New(cfg.Verification)
	if !c.Configured() {
		slog.Warn("verification access key missing, contact submissions will fail until configured")
	}
	return c
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(),
		observability.FromCentralConfig(cfg.Observability, cfg.Server.Environment))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
