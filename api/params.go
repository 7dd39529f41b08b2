package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ParamID parses the :id path parameter.
func ParamID(c echo.Context) (int64, error) {
	return paramInt(c, "id")
}

func paramInt(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter.
func QueryInt(c echo.Context, name string, fallback int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// QueryID parses an optional id query parameter, zero when absent.
func QueryID(c echo.Context, name string) int64 {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
