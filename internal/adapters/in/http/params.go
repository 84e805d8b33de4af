package http

import (
	"fmt"
	"net/http"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathID binds a required uuid path parameter.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return toKernelID(name, raw)
}

// queryID binds an optional uuid query parameter.
func queryID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *uuid.UUID
	err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return optionalKernelID(name, raw)
}

func toKernelID(name string, raw uuid.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromGoogle(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func optionalKernelID(name string, raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toKernelID(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toKernelIDs(name string, raw []uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := toKernelID(name, r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
