package http

import (
	"errors"
	"net/http"

	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var errActorIsMissing = errors.New("X-User-ID header is required")

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, errActorIsMissing):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied), errors.Is(err, errs.ErrTenantMismatch):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidStageTransition),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, errs.ErrIntegrity),
		errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler replaces echo's default so domain errors returned from
// handlers are rendered as Error.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusOf(err)
	message := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, Error{Code: code, Message: message})
}
