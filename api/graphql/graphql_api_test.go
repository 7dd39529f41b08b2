package graphql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/app"
	"focolog/graphqlserver"
	"focolog/model/entity"
)

func setup(t *testing.T) (*app.App, *echo.Echo) {
	t.Helper()
	a := apitest.NewApp(t)
	expired := entity.NewDate(time.Now().AddDate(0, 0, -2))
	_, err := a.Repos.Inventory.Create(context.Background(), &entity.InventoryItem{
		Name: "Bota", Type: entity.ItemTypeEPI, Category: "Calçados", Size: "42",
		Quantity: 1, MinStock: 10, CANumber: "12345", CAExpiryDate: &expired,
	})
	require.NoError(t, err)
	return a, echo.New()
}

func post(e *echo.Echo, query, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":`+query+`}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGraphQL_DashboardQuery(t *testing.T) {
	a, e := setup(t)
	schema, err := graphqlserver.NewSchema(a)
	require.NoError(t, err)
	RegisterGraphQLRoutesWithSchema(e, a, schema)

	rec := post(e, `"{ stats { totalItems } inventoryItems { name stockStatus caStatus daysUntilCaExpiry suggestedPurchaseQuantity } alerts(fresh: true) { counts { critical expired } } }"`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Stats struct {
				TotalItems int `json:"totalItems"`
			} `json:"stats"`
			InventoryItems []struct {
				Name                      string `json:"name"`
				StockStatus               string `json:"stockStatus"`
				CAStatus                  string `json:"caStatus"`
				DaysUntilCAExpiry         int    `json:"daysUntilCaExpiry"`
				SuggestedPurchaseQuantity int    `json:"suggestedPurchaseQuantity"`
			} `json:"inventoryItems"`
			Alerts struct {
				Counts struct {
					Critical int `json:"critical"`
					Expired  int `json:"expired"`
				} `json:"counts"`
			} `json:"alerts"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	apitest.Decode(t, rec, &out)
	require.Empty(t, out.Errors)
	assert.Equal(t, 1, out.Data.Stats.TotalItems)
	require.Len(t, out.Data.InventoryItems, 1)
	item := out.Data.InventoryItems[0]
	assert.Equal(t, "Bota", item.Name)
	assert.Equal(t, "critical", item.StockStatus)
	assert.Equal(t, "expired", item.CAStatus)
	assert.Equal(t, -2, item.DaysUntilCAExpiry)
	assert.Equal(t, 19, item.SuggestedPurchaseQuantity)
	assert.Equal(t, 1, out.Data.Alerts.Counts.Critical)
	assert.Equal(t, 1, out.Data.Alerts.Counts.Expired)
}

func TestGraphQL_UnknownItemIsNull(t *testing.T) {
	a, e := setup(t)
	schema, err := graphqlserver.NewSchema(a)
	require.NoError(t, err)
	RegisterGraphQLRoutesWithSchema(e, a, schema)

	rec := post(e, `"{ inventoryItem(id: \"999\") { name } }"`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"inventoryItem":null}}`, rec.Body.String())
}

func TestGraphQL_ReportExtension(t *testing.T) {
	a, e := setup(t)
	schema, err := graphqlserver.NewSchema(a)
	require.NoError(t, err)
	RegisterGraphQLRoutesWithSchema(e, a, schema)

	rec := post(e, `"{ _extension(name: \"report\", args: \"{\\\"type\\\":\\\"cost\\\",\\\"period\\\":\\\"month\\\"}\") }"`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Data struct {
			Extension string `json:"_extension"`
		} `json:"data"`
	}
	apitest.Decode(t, rec, &out)
	assert.Contains(t, out.Data.Extension, `"type":"cost"`)
}

func TestGraphQL_ExtensionRejectsMalformedArgs(t *testing.T) {
	a, e := setup(t)
	schema, err := graphqlserver.NewSchema(a)
	require.NoError(t, err)
	RegisterGraphQLRoutesWithSchema(e, a, schema)

	rec := post(e, `"{ _extension(name: \"report\", args: \"{type: cost\") }"`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Data struct {
			Extension *string `json:"_extension"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	apitest.Decode(t, rec, &out)
	assert.Nil(t, out.Data.Extension)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0].Message, "args must be a JSON object")
}

func TestGraphQL_RequiresAuth(t *testing.T) {
	a, e := setup(t)
	RegisterGraphQLRoutes(e, a)
	query := `"{ stats { totalItems } }"`

	rec := post(e, query, "")
	assert.NotEqual(t, http.StatusOK, rec.Code)

	sess, err := a.Sessions.Issue(context.Background(), entity.User{ID: 1, Name: "Admin", Email: "admin@focolog.com", Role: entity.RoleAdmin})
	require.NoError(t, err)
	rec = post(e, query, sess.Token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = apitest.Do(e, http.MethodGet, "/playground", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GraphQLPlayground")
}
