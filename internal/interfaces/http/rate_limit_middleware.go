package http

import (
	"context"
	"strconv"

	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
)

// RateLimiter contrato mínimo del limitador; lo cumple *redis_rate.Limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limita las peticiones por IP del cliente. Con limiter nil o perMinute <= 0 no limita.
// Si Redis falla se deja pasar la petición: el límite protege contra abuso, no es una regla de negocio.
func RateLimit(limiter RateLimiter, prefix string, perMinute int) fiber.Handler {
	if limiter == nil || perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limit := redis_rate.PerMinute(perMinute)
	return func(c *fiber.Ctx) error {
		res, err := limiter.Allow(c.UserContext(), prefix+":"+c.IP(), limit)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo verificar rate limit")
			return c.Next()
		}
		if res.Allowed == 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
