package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"focolog/service/report"
)

var (
	esocialOut    string
	esocialPeriod string
)

var esocialCmd = &cobra.Command{
	Use:   "report:esocial",
	Short: "Export PPE deliveries as eSocial CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		from, err := report.Since(esocialPeriod, time.Now())
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if esocialOut != "" && esocialOut != "-" {
			f, err := os.Create(esocialOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		n, err := a.Reports.WriteESocial(cmd.Context(), from, w)
		if err != nil {
			return err
		}
		if esocialOut != "" && esocialOut != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows written to %s\n", n, esocialOut)
		}
		return nil
	},
}

func init() {
	esocialCmd.Flags().StringVarP(&esocialOut, "output", "o", "", "Output file (stdout when empty)")
	esocialCmd.Flags().StringVarP(&esocialPeriod, "period", "p", report.PeriodMonth, "week, month, quarter or year")
	rootCmd.AddCommand(esocialCmd)
}
