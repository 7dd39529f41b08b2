// Package custom wires site-specific extensions through the public
// registries: a GraphQL extension, a CLI command, a cron job and a route.
package custom

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"text/tabwriter"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focolog/api"
	"focolog/app"
	"focolog/cmd"
	"focolog/cron"
	"focolog/graphql"
	gqlregistry "focolog/graphql/registry"
	"focolog/service/inventory"
)

// Suggestion is one low-stock item with the quantity to buy.
type Suggestion struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
	Suggested int    `json:"suggested"`
	Status    string `json:"stock_status"`
}

// LowStock lists items at or below their minimum, critical first.
func LowStock(ctx context.Context, a *app.App) ([]Suggestion, error) {
	views, err := a.Inventory.List(ctx, inventory.Filter{Stock: "low"})
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(views))
	for _, v := range views {
		out = append(out, Suggestion{
			ItemID:    v.ID,
			Name:      v.Name,
			Size:      v.Size,
			Quantity:  v.Quantity,
			MinStock:  v.MinStock,
			Suggested: v.SuggestedPurchase,
			Status:    v.StockStatus,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status == inventory.StockCritical && out[j].Status != inventory.StockCritical
	})
	return out, nil
}

func init() {
	// GraphQL extension: _extension(name: "lowStock")
	gqlregistry.Register("lowStock", func(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
		a := graphql.AppFromContext(ctx)
		if a == nil {
			return nil, fmt.Errorf("lowStock: no app in context")
		}
		return LowStock(ctx, a)
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "users:list",
		Short: "List users and their roles",
		RunE: func(c *cobra.Command, args []string) error {
			a, err := cmd.LoadApp()
			if err != nil {
				return err
			}
			defer a.Close()
			us, err := a.Users.List(c.Context(), "")
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range us {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.Role, u.Active)
			}
			return w.Flush()
		},
	})

	// Cron job: daily purchase digest in the logs
	cron.Register("lowstockdigest", "0 7 * * 1-5", func(ctx context.Context, a *app.App) error {
		items, err := LowStock(ctx, a)
		if err != nil {
			return err
		}
		for _, s := range items {
			a.Logger.Info("purchase suggestion",
				zap.String("item", s.Name),
				zap.String("size", s.Size),
				zap.Int("quantity", s.Quantity),
				zap.Int("suggested", s.Suggested),
				zap.String("stock_status", s.Status),
			)
		}
		return nil
	})

	// HTTP route
	api.RegisterRoute(func(e *echo.Echo, a *app.App) {
		e.GET("/info", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{
				"app":     a.Config.Server.AppName,
				"env":     a.Config.Server.AppEnv,
				"store":   a.Config.Store.Backend,
				"search":  a.Search.Enabled(),
				"jobs":    cron.Names(),
				"graphql": gqlregistry.Names(),
			})
		})
	})
}
