package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"focolog/core/rowstore"
	"focolog/service"
	"focolog/service/users"
)

// Error writes err as a JSON response. what names the resource in the
// generic message shown for store failures, e.g. "estoque".
func Error(c echo.Context, logger *zap.Logger, err error, what string) error {
	var ve *service.ValidationError
	var apiErr *rowstore.APIError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, rowstore.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro não encontrado"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "E-mail ou senha inválidos"})
	}

	logger.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	status := http.StatusInternalServerError
	if errors.As(err, &apiErr) || errors.Is(err, rowstore.ErrNotConfigured) {
		status = http.StatusBadGateway
	}
	return c.JSON(status, echo.Map{"error": "Erro ao carregar " + what, "retry": true})
}

// BadRequest answers 400 for malformed bodies and parameters.
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
