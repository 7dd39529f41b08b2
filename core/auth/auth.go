package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"focolog/config"
	"focolog/model/entity"
)

// Context keys set by the middleware.
const (
	KeyAuthType = "auth_type"
	KeyRole     = "role_name"
	KeySession  = "session"
	KeyToken    = "token"
)

// Middleware returns the auth middleware selected by cfg.Type. Static
// credentials (basic, key, or the API key in token mode) act as admin.
func Middleware(cfg config.AuthConfig, sessions *Sessions) echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch cfg.Type {
	case "key":
		return keyAuth(cfg, skipper)
	case "basic":
		return basicAuth(cfg, skipper)
	default:
		return tokenAuth(cfg, sessions, skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func basicAuth(cfg config.AuthConfig, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if cfg.BasicUser == "" || !equal(username, cfg.BasicUser) || !equal(password, cfg.BasicPass) {
				return false, nil
			}
			c.Set(KeyAuthType, "basic")
			c.Set(KeyRole, entity.RoleAdmin)
			return true, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(cfg config.AuthConfig, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			if cfg.APIKey == "" || !equal(key, cfg.APIKey) {
				return false, nil
			}
			c.Set(KeyAuthType, "key")
			c.Set(KeyRole, entity.RoleAdmin)
			return true, nil
		},
		Skipper: skipper,
	})
}

func tokenAuth(cfg config.AuthConfig, sessions *Sessions, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if cfg.APIKey != "" && equal(token, cfg.APIKey) {
				c.Set(KeyAuthType, "static")
				c.Set(KeyRole, entity.RoleAdmin)
				return true, nil
			}
			sess, ok := sessions.Lookup(c.Request().Context(), token)
			if !ok {
				return false, nil
			}
			c.Set(KeyAuthType, "token")
			c.Set(KeyToken, token)
			c.Set(KeySession, sess)
			c.Set(KeyRole, sess.Role)
			return true, nil
		},
		Skipper: skipper,
	})
}

// CurrentSession returns the session of a token-authenticated request.
func CurrentSession(c echo.Context) (*Session, bool) {
	sess, ok := c.Get(KeySession).(*Session)
	return sess, ok && sess != nil
}

// Role returns the role resolved by the middleware, empty if none.
func Role(c echo.Context) string {
	r, _ := c.Get(KeyRole).(string)
	return r
}

// RequireRole rejects requests whose role is not in roles. Admin is always
// allowed.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			if role == entity.RoleAdmin {
				return next(c)
			}
			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Acesso negado para este perfil"})
		}
	}
}
