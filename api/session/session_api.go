package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
)

func init() {
	api.RegisterModule(RegisterSessionRoutes)
}

// RegisterSessionRoutes serves login, me and logout under /api/auth.
// Login is listed in the auth skipper paths.
func RegisterSessionRoutes(apiGroup *echo.Group, a *app.App) {
	g := apiGroup.Group("/auth")
	log := a.Logger

	g.POST("/login", func(c echo.Context) error {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, err)
		}
		u, err := a.Users.Authenticate(c.Request().Context(), body.Email, body.Password)
		if err != nil {
			return api.Error(c, log, err, "usuário")
		}
		sess, err := a.Sessions.Issue(c.Request().Context(), *u)
		if err != nil {
			return api.Error(c, log, err, "sessão")
		}
		return c.JSON(http.StatusOK, echo.Map{"token": sess.Token, "expires_at": sess.ExpiresAt, "user": u})
	})

	g.GET("/me", func(c echo.Context) error {
		sess, ok := auth.CurrentSession(c)
		if !ok {
			return c.JSON(http.StatusOK, echo.Map{"role": auth.Role(c), "auth_type": c.Get(auth.KeyAuthType)})
		}
		u, err := a.Users.Get(c.Request().Context(), sess.UserID)
		if err != nil {
			return api.Error(c, log, err, "usuário")
		}
		return c.JSON(http.StatusOK, u)
	})

	g.POST("/logout", func(c echo.Context) error {
		if token, ok := c.Get(auth.KeyToken).(string); ok {
			a.Sessions.Revoke(c.Request().Context(), token)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
