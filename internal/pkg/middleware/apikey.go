package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/efkobus/antifraud-system/internal/utils"
	"github.com/labstack/echo/v4"
)

const (
	APIKeyHeader = "X-API-Key"
)

// ValidateAPIKey accepts a request when X-API-Key matches one of keys.
// Empty keys are ignored, so an unconfigured caller can never authenticate.
func ValidateAPIKey(keys ...string) echo.MiddlewareFunc {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed = append(allowed, []byte(k))
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			for _, k := range allowed {
				if subtle.ConstantTimeCompare([]byte(apiKey), k) == 1 {
					return next(c)
				}
			}

			return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
		}
	}
}
