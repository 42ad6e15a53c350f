package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/contact_relay/config"
	"github.com/Alijeyrad/contact_relay/internal/api/http/handler"
	"github.com/Alijeyrad/contact_relay/internal/api/http/middleware"
	"github.com/Alijeyrad/contact_relay/internal/service/contact"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Redis      *redis.Client `optional:"true"`
	ContactSvc contact.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Liveness, health & metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	var limit fiber.Handler
	if r.p.Cfg.RateLimit.Enabled {
		limit = middleware.NewContactLimiter(r.p.Cfg.RateLimit, r.p.Redis, handler.TooManyRequests)
	}

	// 3. Handlers
	contactH := handler.NewContactHandler(r.p.ContactSvc)

	api := app.Group("/api")

	r.registerContactRoutes(api, contactH, limit)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get("/", handler.Root)

	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.redisHealthy(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// redisHealthy is true when no limiter store is configured.
func (r *Router) redisHealthy(ctx context.Context) bool {
	if r.p.Redis == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.p.Redis.Ping(ctx).Err() == nil
}
