package httpErrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amankumarsingh77/video-splitter/internal/split"
	"github.com/amankumarsingh77/video-splitter/internal/videos"
	"github.com/amankumarsingh77/video-splitter/internal/worker"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	ErrBadRequest   = errors.New("invalid request payload")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrInternal     = errors.New("internal server error")
)

// Status maps a domain error to an HTTP status code.
func Status(err error) int {
	var validationErr *split.ValidationError
	var fieldErrs validator.ValidationErrors
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &fieldErrs),
		errors.Is(err, split.ErrDurationUnknown),
		errors.Is(err, split.ErrNoSegments),
		errors.Is(err, videos.ErrStatusManaged),
		errors.Is(err, videos.ErrInvalidFileFormat),
		errors.Is(err, videos.ErrInvalidFilter),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, videos.ErrNotFound),
		errors.Is(err, videos.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, videos.ErrJobInFlight),
		errors.Is(err, videos.ErrInvalidTransition),
		errors.Is(err, videos.ErrSourceAlreadySet),
		errors.Is(err, videos.ErrStatusConflict):
		return http.StatusConflict
	case errors.Is(err, worker.ErrPoolSaturated),
		errors.Is(err, worker.ErrPoolStopped):
		return http.StatusServiceUnavailable
	case errors.As(err, &httpErr):
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// ErrorResponse writes {"error": ...}. Internal errors are not echoed back.
func ErrorResponse(c echo.Context, err error) error {
	status := Status(err)
	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message = fmt.Sprint(httpErr.Message)
	}
	if status == http.StatusInternalServerError {
		message = ErrInternal.Error()
	}
	return c.JSON(status, map[string]string{"error": message})
}
