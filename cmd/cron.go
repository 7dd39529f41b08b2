package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"focolog/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if jobName != "" {
			name := strings.ToLower(jobName)
			fmt.Fprintf(cmd.OutOrStdout(), "Running cron job: %s\n", name)
			return cron.RunJob(ctx, a, name)
		}

		s, err := cron.StartCron(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cron scheduler started (%s). Press Ctrl+C to exit.\n", strings.Join(cron.Names(), ", "))
		<-ctx.Done()
		s.Stop()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
