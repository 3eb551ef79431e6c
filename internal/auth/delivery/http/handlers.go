package http

import (
	"net/http"

	"github.com/amankumarsingh77/video-splitter/internal/auth"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/pkg/httpErrors"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/labstack/echo/v4"
)

type authHandler struct {
	authUc auth.UseCase
	logger logger.Logger
}

func NewAuthHandler(authUc auth.UseCase, logger logger.Logger) auth.Handler {
	return &authHandler{
		authUc: authUc,
		logger: logger,
	}
}

func (h *authHandler) IssueToken() echo.HandlerFunc {
	return func(c echo.Context) error {
		credentials := &models.Credentials{}
		if err := c.Bind(credentials); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		token, err := h.authUc.IssueToken(c.Request().Context(), credentials)
		if err != nil {
			return httpErrors.ErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, token)
	}
}

func (h *authHandler) GetMe() echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := utils.GetIdentityFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized access"})
		}
		return c.JSON(http.StatusOK, identity)
	}
}
