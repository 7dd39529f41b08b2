package graphqlserver

import (
	"context"
	"encoding/json"
	"fmt"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"focolog/app"
	"focolog/graphql"
	gqlmodels "focolog/graphql/models"
	"focolog/graphql/registry"
	"focolog/graphql/resolvers"
)

// QueryResolver is the root for graphql-go and implements Query fields.
// Delegates to resolvers package.
type QueryResolver struct {
	res *resolvers.QueryResolver
}

func (r *QueryResolver) Stats(ctx context.Context) (*gqlmodels.Stats, error) {
	return r.res.Stats(ctx)
}

// AlertsArgs matches the alerts query arguments (fresh defaults to false).
type AlertsArgs struct {
	Fresh bool
}

func (r *QueryResolver) Alerts(ctx context.Context, args AlertsArgs) (*gqlmodels.AlertSnapshot, error) {
	return r.res.Alerts(ctx, args.Fresh)
}

func (r *QueryResolver) InventoryItems(ctx context.Context, args graphql.InventoryItemsArgs) ([]*gqlmodels.InventoryItem, error) {
	return r.res.InventoryItems(ctx, args)
}

// InventoryItemArgs matches the inventoryItem query arguments.
type InventoryItemArgs struct {
	ID gql.ID
}

func (r *QueryResolver) InventoryItem(ctx context.Context, args InventoryItemArgs) (*gqlmodels.InventoryItem, error) {
	return r.res.InventoryItem(ctx, args.ID)
}

func (r *QueryResolver) InventorySummary(ctx context.Context) ([]*gqlmodels.CategorySummary, error) {
	return r.res.InventorySummary(ctx)
}

// Extension resolves _extension(name, args) through the extension registry
// and returns the result as JSON.
func (r *QueryResolver) Extension(ctx context.Context, args graphql.ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, fmt.Errorf("_extension %s: args must be a JSON object: %w", args.Name, err)
		}
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(a *app.App) (*gql.Schema, error) {
	root := &QueryResolver{res: resolvers.NewResolver(a)}
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
