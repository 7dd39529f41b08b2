package graphql

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"focolog/api"
	"focolog/app"
	"focolog/core/auth"
	graphqlpkg "focolog/graphql"
	"focolog/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts /graphql behind the API auth and /playground.
func RegisterGraphQLRoutes(e *echo.Echo, a *app.App) {
	schema, err := graphqlserver.NewSchema(a)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	RegisterGraphQLRoutesWithSchema(e, a, schema, auth.Middleware(a.Config.Auth, a.Sessions))
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a given schema and
// middleware (tests pass none).
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, a *app.App, schema *graphql.Schema, m ...echo.MiddlewareFunc) {
	h := appContext(a, graphqlserver.Handler(schema))
	e.POST("/graphql", h, m...)
	e.GET("/graphql", h, m...)
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

func appContext(a *app.App, next http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := graphqlpkg.WithApp(c.Request().Context(), a)
		next.ServeHTTP(c.Response(), c.Request().WithContext(ctx))
		return nil
	}
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>FocoLog GraphQL</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init(document.getElementById('root'), { endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
