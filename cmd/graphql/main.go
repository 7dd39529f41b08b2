// Standalone read-only GraphQL server: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"focolog/api"
	graphqlApi "focolog/api/graphql"
	"focolog/app"
	"focolog/config"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("app", zap.Error(err))
	}
	defer a.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(api.RequestLogger(logger))
	graphqlApi.RegisterGraphQLRoutes(e, a)

	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles", "cosmic"}
	figure.NewFigure("FocoLog GQL", gqlFonts[rand.Intn(len(gqlFonts))], true).Print()
	fmt.Println("Standalone GraphQL server")

	port := cfg.Server.Port
	logger.Info("graphql ready",
		zap.String("endpoint", "http://localhost:"+port+"/graphql"),
		zap.String("playground", "http://localhost:"+port+"/playground"),
	)
	if err := e.Start(":" + port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
