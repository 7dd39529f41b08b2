package resolvers

import (
	"context"
	"errors"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	"focolog/app"
	"focolog/core/rowstore"
	"focolog/graphql"
	gqlmodels "focolog/graphql/models"
	"focolog/service/inventory"
)

// QueryResolver serves the read-only dashboard fields over the service
// container.
type QueryResolver struct {
	app *app.App
}

func NewResolver(a *app.App) *QueryResolver {
	return &QueryResolver{app: a}
}

func (r *QueryResolver) Stats(ctx context.Context) (*gqlmodels.Stats, error) {
	st, err := r.app.Dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return mapStats(st), nil
}

func (r *QueryResolver) Alerts(ctx context.Context, fresh bool) (*gqlmodels.AlertSnapshot, error) {
	get := r.app.Alerts.Snapshot
	if fresh {
		get = r.app.Alerts.Scan
	}
	snap, err := get(ctx)
	if err != nil {
		return nil, err
	}
	return mapSnapshot(snap), nil
}

func (r *QueryResolver) InventoryItems(ctx context.Context, args graphql.InventoryItemsArgs) ([]*gqlmodels.InventoryItem, error) {
	views, err := r.app.Inventory.List(ctx, inventory.Filter{
		Search:   deref(args.Search),
		Type:     deref(args.Type),
		Category: deref(args.Category),
		Stock:    deref(args.Stock),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.InventoryItem, 0, len(views))
	for _, v := range views {
		out = append(out, mapItem(v))
	}
	return out, nil
}

// InventoryItem returns nil for an unknown id.
func (r *QueryResolver) InventoryItem(ctx context.Context, id gql.ID) (*gqlmodels.InventoryItem, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return nil, nil
	}
	item, err := r.app.Inventory.Get(ctx, n)
	if errors.Is(err, rowstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapItem(r.app.Inventory.View(*item)), nil
}

func (r *QueryResolver) InventorySummary(ctx context.Context) ([]*gqlmodels.CategorySummary, error) {
	sums, err := r.app.Inventory.Summary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.CategorySummary, 0, len(sums))
	for _, s := range sums {
		out = append(out, mapSummary(s))
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
