package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focolog/app"
	"focolog/config"
)

var rootCmd = &cobra.Command{
	Use:           "focolog",
	Short:         "FocoLog PPE inventory and request management",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// LoadApp builds the container from the environment. Callers Close it.
func LoadApp() (*app.App, error) {
	cfg := config.LoadAppConfig()
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return app.New(cfg, logger)
}
