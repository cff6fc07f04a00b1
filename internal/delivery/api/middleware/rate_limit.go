package middleware

import (
	"net/http"
	"time"

	"blog/config"
	"blog/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	defaultAuthRate      = 5
	defaultAuthBurst     = 10
	defaultAuthRateTTL   = 3 * time.Minute
	rateLimitedErrorCode = "TOO_MANY_REQUESTS"
)

// NewAuthRateLimiter limits register and login attempts per client IP.
func NewAuthRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	storeCfg := echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(defaultAuthRate),
		Burst:     defaultAuthBurst,
		ExpiresIn: defaultAuthRateTTL,
	}

	if cfg.Auth != nil && cfg.Auth.RateLimit != nil {
		rl := cfg.Auth.RateLimit
		if rl.RequestsPerSecond > 0 {
			storeCfg.Rate = rate.Limit(rl.RequestsPerSecond)
		}
		if rl.Burst > 0 {
			storeCfg.Burst = rl.Burst
		}
		if rl.ExpiresIn > 0 {
			storeCfg.ExpiresIn = rl.ExpiresIn
		}
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(storeCfg),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return response.Error(c, http.StatusTooManyRequests, rateLimitedErrorCode, "Too many requests", nil)
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return response.Error(c, http.StatusForbidden, rateLimitedErrorCode, "Unable to identify client", nil)
		},
	})
}
