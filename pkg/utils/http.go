package utils

import (
	"context"
	"fmt"

	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/labstack/echo/v4"
)

type IdentityCtxKey struct{}

func GetIdentityFromCtx(ctx context.Context) (*models.Identity, error) {
	identity, ok := ctx.Value(IdentityCtxKey{}).(*models.Identity)
	if !ok {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey{}, identity)
}

func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func GetIPAddress(c echo.Context) string {
	return c.Request().RemoteAddr
}
