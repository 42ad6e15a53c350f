package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/contact_relay/config"
)

// NewContactLimiter counts requests per caller IP. Counters live in Redis when
// a client is given, so several replicas share one budget; otherwise fiber's
// in-process store is used. Every request counts, valid or not.
func NewContactLimiter(cfg config.RateLimitConfig, rdb *redis.Client, limitReached fiber.Handler) fiber.Handler {
	lc := limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window(),
		KeyGenerator: func(c fiber.Ctx) string {
			return "contact:" + c.IP()
		},
		LimitReached:      limitReached,
		LimiterMiddleware: limiter.FixedWindow{},
	}

	if strings.EqualFold(cfg.Strategy, "sliding") {
		lc.LimiterMiddleware = limiter.SlidingWindow{}
	}

	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	}

	return limiter.New(lc)
}
