package middleware

import (
	"net/http"
	"strings"

	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/labstack/echo/v4"
)

// AuthJWTMiddleware requires a valid Bearer token and stores the caller in the
// request context.
func (mw *MiddlewareManager) AuthJWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		bearerHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		headerParts := strings.Split(bearerHeader, " ")
		if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "Bearer") {
			mw.logger.Debugf("auth middleware: malformed authorization header")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		identity, err := mw.authUC.CurrentCaller(c.Request().Context(), headerParts[1])
		if err != nil {
			mw.logger.Debugf("auth middleware: %v", err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		c.Set("identity", identity)
		ctx := utils.WithIdentity(c.Request().Context(), identity)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
