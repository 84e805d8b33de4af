package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/unrolled/secure"
)

const (
	headerUserID         = "X-User-ID"
	headerIdempotencyKey = "Idempotency-Key"

	actorContextKey = "actor"
)

// identify resolves X-User-ID into a staff.Actor. Requests without the header
// pass through anonymous; handlers that need an actor reject them.
func (s *Server) identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.Request().Header.Get(headerUserID))
		if raw == "" {
			return next(c)
		}

		userID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "X-User-ID is not a valid id")
		}
		query, err := queries.NewResolveActorQuery(userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		actor, err := s.h.ResolveActor.Handle(c.Request().Context(), query)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}

		c.Set(actorContextKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) (staff.Actor, error) {
	actor, ok := c.Get(actorContextKey).(staff.Actor)
	if !ok {
		return staff.Actor{}, errActorIsMissing
	}
	return actor, nil
}

// optionalActor returns nil for anonymous requests.
func optionalActor(c echo.Context) *staff.Actor {
	actor, ok := c.Get(actorContextKey).(staff.Actor)
	if !ok {
		return nil
	}
	return &actor
}

// validateRequests checks every request against the API contract before it
// reaches a handler. Requests for paths the contract does not describe pass
// through untouched.
func validateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		MultiError: false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				var reqErr *openapi3filter.RequestError
				if errors.As(err, &reqErr) {
					return echo.NewHTTPError(http.StatusBadRequest, reqErr.Error())
				}
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return next(c)
		}
	}, nil
}

// securityHeaders sets the usual hardening headers. HSTS is left to the TLS
// terminating proxy.
func securityHeaders(development bool) echo.MiddlewareFunc {
	return echo.WrapMiddleware(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      development,
	}).Handler)
}

// rateLimit caps requests per client address.
func rateLimit(requests int, window time.Duration) echo.MiddlewareFunc {
	return echo.WrapMiddleware(httprate.LimitByIP(requests, window))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				logger.Warn("request", attrs...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
