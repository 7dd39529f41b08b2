package resolvers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"focolog/graphql"
	gqlregistry "focolog/graphql/registry"
	"focolog/service/report"
)

var errNoApp = errors.New("graphql: service container missing from context")

func init() {
	gqlregistry.Register("report", resolveReport)
	gqlregistry.Register("openActionPlans", resolveOpenPlans)
}

// resolveReport runs a report. Args: type, period, cost_center.
func resolveReport(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	a := graphql.AppFromContext(ctx)
	if a == nil {
		return nil, errNoApp
	}
	var p report.Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &p, WeaklyTypedInput: true})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(args); err != nil {
		return nil, fmt.Errorf("report args: %w", err)
	}
	if p.Type == "" {
		p.Type = report.TypeConsumption
	}
	return a.Reports.Generate(ctx, p)
}

func resolveOpenPlans(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	a := graphql.AppFromContext(ctx)
	if a == nil {
		return nil, errNoApp
	}
	return a.ActionPlans.Open(ctx)
}
