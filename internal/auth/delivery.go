package auth

import "github.com/labstack/echo/v4"

type Handler interface {
	IssueToken() echo.HandlerFunc
	GetMe() echo.HandlerFunc
}
