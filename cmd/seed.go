package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"focolog/service/seed"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "store:seed",
	Short: "Load demo data into the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.Bootstrap(ctx); err != nil {
			return err
		}
		res, err := seed.Run(ctx, seed.Services{
			Users:     a.Users,
			Inventory: a.Inventory,
			Suppliers: a.Suppliers,
			Trainings: a.Trainings,
		}, time.Now(), seedForce, a.Logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), `
=== Seed Report ===
Cost centers:   %d
Users:          %d
Items:          %d
Suppliers:      %d
Trainings:      %d
`, res.CostCenters, res.Users, res.Items, res.Suppliers, res.Trainings)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when inventory already exists")
	rootCmd.AddCommand(seedCmd)
}
