package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var alertsScanCmd = &cobra.Command{
	Use:   "alerts:scan",
	Short: "Rebuild the alert snapshot and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.Alerts.Scan(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, al := range snap.Alerts {
			fmt.Fprintf(out, "[%-8s] %-8s %s: %s\n", al.Severity, al.Kind, al.Title, al.Detail)
		}
		fmt.Fprintf(out, "\ncritical=%d warning=%d expired=%d total=%d\n",
			snap.Counts.Critical, snap.Counts.Warning, snap.Counts.Expired, snap.Counts.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsScanCmd)
}
