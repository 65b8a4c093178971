package middleware

import (
	appctx "github.com/efkobus/antifraud-system/internal/pkg/context"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID propagates an incoming X-Request-ID or assigns a fresh UUID. The
// id is also put on the request context for the layers below the handler.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("request_id", id)

			ctx := appctx.WithSource(appctx.WithRequestID(c.Request().Context(), id), "http")
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
