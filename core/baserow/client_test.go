package baserow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focolog/core/rowstore"
)

type recorded struct {
	method string
	path   string
	query  map[string][]string
	auth   string
	body   map[string]interface{}
}

func fakeServer(t *testing.T, status int, reply interface{}) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.auth = r.Header.Get("Authorization")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if reply != nil {
			_ = json.NewEncoder(w).Encode(reply)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_List(t *testing.T) {
	srv, rec := fakeServer(t, http.StatusOK, map[string]interface{}{
		"count":    1,
		"next":     nil,
		"previous": nil,
		"results":  []map[string]interface{}{{"id": 3, "name": "Capacete", "quantity": "5"}},
	})
	c := NewClient(srv.URL, "tok", zap.NewNop())

	page, err := c.List(context.Background(), 719, rowstore.ListOptions{
		Search:  "cap",
		OrderBy: "-name",
		Filters: map[string]string{"category": "Cabeça"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/database/rows/table/719/", rec.path)
	assert.Equal(t, "Token tok", rec.auth)
	assert.Equal(t, "true", rec.query["user_field_names"][0])
	assert.Equal(t, "cap", rec.query["search"][0])
	assert.Equal(t, "-name", rec.query["order_by"][0])
	assert.Equal(t, "Cabeça", rec.query["filter__category__equal"][0])
	assert.Equal(t, "1", rec.query["page"][0])

	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(3), page.Results[0].ID())
	assert.Equal(t, "Capacete", page.Results[0]["name"])
}

func TestClient_CreateStripsID(t *testing.T) {
	srv, rec := fakeServer(t, http.StatusOK, map[string]interface{}{"id": 10, "name": "Luvas"})
	c := NewClient(srv.URL, "tok", zap.NewNop())

	row, err := c.Create(context.Background(), 719, rowstore.Row{"id": 99, "name": "Luvas"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "true", rec.query["user_field_names"][0])
	assert.NotContains(t, rec.body, "id")
	assert.Equal(t, int64(10), row.ID())
}

func TestClient_UpdateUsesPatch(t *testing.T) {
	srv, rec := fakeServer(t, http.StatusOK, map[string]interface{}{"id": 10, "quantity": "8"})
	c := NewClient(srv.URL, "tok", zap.NewNop())

	_, err := c.Update(context.Background(), 719, 10, rowstore.Row{"quantity": 8})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/database/rows/table/719/10/", rec.path)
}

func TestClient_DeleteOmitsFieldNames(t *testing.T) {
	srv, rec := fakeServer(t, http.StatusNoContent, nil)
	c := NewClient(srv.URL, "tok", zap.NewNop())

	require.NoError(t, c.Delete(context.Background(), 719, 10))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Empty(t, rec.query["user_field_names"])
}

func TestClient_NotFound(t *testing.T) {
	srv, _ := fakeServer(t, http.StatusNotFound, map[string]string{"error": "ERROR_ROW_DOES_NOT_EXIST"})
	c := NewClient(srv.URL, "tok", zap.NewNop())

	_, err := c.Get(context.Background(), 719, 1)
	assert.ErrorIs(t, err, rowstore.ErrNotFound)
}

func TestClient_APIError(t *testing.T) {
	srv, _ := fakeServer(t, http.StatusBadRequest, map[string]string{"error": "ERROR_REQUEST_BODY_VALIDATION"})
	c := NewClient(srv.URL, "tok", zap.NewNop())

	_, err := c.Create(context.Background(), 719, rowstore.Row{"name": "x"})
	var apiErr *rowstore.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "ERROR_REQUEST_BODY_VALIDATION")
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("http://unused", "", zap.NewNop())
	assert.False(t, c.Configured())
	_, err := c.List(context.Background(), 719, rowstore.ListOptions{})
	assert.ErrorIs(t, err, rowstore.ErrNotConfigured)
}
