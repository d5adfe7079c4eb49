package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// submitsPerMinute is the sustained rate allowed per client IP. A burst of
// the same size covers a person retrying a form a few times in a row.
const submitsPerMinute = 10

// RateLimiter guards the card's submission routes against credential
// stuffing. Limits apply per client IP, backed by an in-memory store, so
// this suits single-instance deployments.
func RateLimiter() echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(submitsPerMinute) / 60),
			Burst:     submitsPerMinute,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
