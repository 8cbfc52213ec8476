package middleware

import (
	"context"
	"math"
	"strconv"

	"GoldTracker/internal/domain/repository"
	"GoldTracker/internal/service/ratelimit"
	apphttp "GoldTracker/pkg/http"
	applogger "GoldTracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Allower decides whether a request key may proceed.
type Allower interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit rejects requests over the limiter's budget with 429. The key is
// the client IP. A failing backend lets requests through.
func RateLimit(lim Allower, metrics repository.Metrics, l *applogger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = applogger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			d, err := lim.Allow(c.Request().Context(), ip)
			if err != nil {
				metrics.RecordError("ratelimit_backend")
				l.Warn("rate limiter unavailable", applogger.Error(err), applogger.String("ip", ip))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				metrics.RecordError("ratelimit_rejected")
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(d.Reset.Seconds()))))
				return apphttp.TooManyRequestsError("too many requests")
			}
			return next(c)
		}
	}
}
