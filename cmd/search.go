package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "search:reindex",
	Short: "Rebuild the inventory search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := LoadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		items, err := a.Inventory.Items(ctx)
		if err != nil {
			return err
		}
		n, err := a.Search.Reindex(ctx, items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d items indexed\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
