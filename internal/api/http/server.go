package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/fx"

	"github.com/Alijeyrad/contact_relay/config"
	"github.com/Alijeyrad/contact_relay/internal/api/http/handler"
	"github.com/Alijeyrad/contact_relay/internal/api/http/middleware"
	"github.com/Alijeyrad/contact_relay/internal/api/http/router"
	"github.com/Alijeyrad/contact_relay/pkg/constants"
	"github.com/Alijeyrad/contact_relay/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

// NewApp builds the fiber app with global middleware and all routes.
func NewApp(cfg *config.Config, r *router.Router, tracing bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	app := fiber.New(fiber.Config{
		AppName:      constants.ServiceName,
		ErrorHandler: handler.ErrorHandler,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		ProxyHeader:  cfg.Server.ProxyHeader,
		TrustProxy:   cfg.Server.ProxyHeader != "",
		TrustProxyConfig: fiber.TrustProxyConfig{
			Proxies: cfg.Server.TrustedProxies,
		},
	})

	if tracing {
		app.Use(observability.FiberMiddleware())
	}

	configureGlobalMiddleware(app, cfg)

	r.Register(app)

	return app
}

func NewServer(p Params) *fiber.App {
	tracing := p.OTel != nil && p.Cfg.Observability.Tracing.Enabled
	app := NewApp(p.Cfg, p.Router, tracing)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("contact relay listening", "addr", addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())
	app.Use(helmet.New())

	// Without an allow-list no cross-origin caller is admitted.
	if len(cfg.Server.CORS.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.CORS.AllowOrigins,
			AllowMethods: cfg.Server.CORS.AllowMethods,
			AllowHeaders: cfg.Server.CORS.AllowHeaders,
			MaxAge:       cfg.Server.CORS.MaxAgeSeconds,
		}))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] ${method} ${path} ${status} ${latency}\n",
	}))
}
