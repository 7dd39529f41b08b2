// Package apitest builds an app on a throwaway local store for handler
// tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"focolog/app"
	"focolog/config"
	"focolog/core/auth"
	"focolog/core/cache"
	"focolog/core/rowstore/rowstoretest"
)

// NewApp wires every service on a temp sqlite store with an in-memory cache.
func NewApp(t testing.TB) *app.App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{AppName: "FocoLog", AppEnv: "test", MediaDir: t.TempDir(), MediaURL: "/media/"},
		Auth:   config.AuthConfig{Type: "token", AdminEmail: "admin@focolog.com", AdminPassword: "admin123"},
		Alerts: config.AlertConfig{CAWarningDays: 30, TrainingWarningDays: 30},
	}
	return app.NewWithStore(cfg, zap.NewNop(), rowstoretest.NewLocalStore(t), cache.NewCache())
}

// Serve mounts register under /api with the given role already resolved.
func Serve(a *app.App, role string, register func(*echo.Group, *app.App)) *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role != "" {
				c.Set(auth.KeyRole, role)
			}
			return next(c)
		}
	})
	register(g, a)
	return e
}

// Do sends a request with body encoded as JSON when not nil.
func Do(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded JSON body into out.
func Decode(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}
