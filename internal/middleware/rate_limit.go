package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/errs"
	"github.com/tkratz/pokedex-api/internal/server"
)

const (
	rateLimitWindow = time.Minute
)

// RateLimitMiddleware implements a fixed-window request counter backed
// by Redis, keyed per client IP and endpoint.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit rejects requests once a client exceeds maxRequests within the
// window. Counting errors fail open so Redis outages don't take down
// the API.
func (r *RateLimitMiddleware) Limit(maxRequests int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.server.Redis == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", c.RealIP(), c.Path())

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Warn().Err(err).Msg("Rate limit counter unavailable")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, rateLimitWindow)
			}

			if count > int64(maxRequests) {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("Too many requests, slow down")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit emits a custom event so limit pressure shows up
// in New Relic dashboards.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
