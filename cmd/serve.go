package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focolog/api"
	"focolog/cron"
)

var withCron bool

var bannerFonts = []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles", "cosmic"}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := a.Bootstrap(ctx); err != nil {
			return err
		}
		if withCron {
			s, err := cron.StartCron(a)
			if err != nil {
				return err
			}
			defer s.Stop()
		}

		e := api.NewServer(a)
		figure.NewFigure(a.Config.Server.AppName, bannerFonts[rand.Intn(len(bannerFonts))], true).Print()
		fmt.Println()

		addr := ":" + a.Config.Server.Port
		a.Logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("env", a.Config.Server.AppEnv),
			zap.String("auth", a.Config.Auth.Type),
		)
		errc := make(chan error, 1)
		go func() { errc <- e.Start(addr) }()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}
		a.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withCron, "cron", false, "Also run the cron scheduler in-process")
	rootCmd.AddCommand(serveCmd)
}
