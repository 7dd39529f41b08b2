// Package baserow is the REST client for the hosted row database.
package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"focolog/core/rowstore"
)

const rowsPath = "/api/database/rows/table/"

// Client implements rowstore.Store against the Baserow row API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether a token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

func (c *Client) tableURL(table rowstore.TableID, id int64, userFieldNames bool) string {
	u := c.baseURL + rowsPath + strconv.Itoa(int(table)) + "/"
	if id > 0 {
		u += strconv.FormatInt(id, 10) + "/"
	}
	if userFieldNames {
		u += "?user_field_names=true"
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}, out interface{}) error {
	if !c.Configured() {
		return rowstore.ErrNotConfigured
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("baserow: encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("baserow: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("baserow request failed", zap.String("method", method), zap.String("url", rawURL), zap.Error(err))
		return fmt.Errorf("baserow: %s: %w", method, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("baserow request",
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return rowstore.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("baserow api error", zap.Int("status", resp.StatusCode), zap.ByteString("body", b))
		return &rowstore.APIError{Status: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("baserow: decode response: %w", err)
	}
	return nil
}

// List fetches one page of rows.
func (c *Client) List(ctx context.Context, table rowstore.TableID, opts rowstore.ListOptions) (*rowstore.Page, error) {
	opts = opts.Normalize()
	q := url.Values{}
	q.Set("user_field_names", "true")
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("size", strconv.Itoa(opts.Size))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.OrderBy != "" {
		q.Set("order_by", opts.OrderBy)
	}
	for _, field := range opts.FilterKeys() {
		q.Set("filter__"+field+"__equal", opts.Filters[field])
	}
	rawURL := c.tableURL(table, 0, false) + "?" + q.Encode()

	var page rowstore.Page
	if err := c.do(ctx, http.MethodGet, rawURL, nil, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []rowstore.Row{}
	}
	return &page, nil
}

func (c *Client) Get(ctx context.Context, table rowstore.TableID, id int64) (rowstore.Row, error) {
	var row rowstore.Row
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, id, true), nil, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func (c *Client) Create(ctx context.Context, table rowstore.TableID, row rowstore.Row) (rowstore.Row, error) {
	var out rowstore.Row
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, 0, true), withoutID(row), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, table rowstore.TableID, id int64, fields rowstore.Row) (rowstore.Row, error) {
	var out rowstore.Row
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table, id, true), withoutID(fields), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, table rowstore.TableID, id int64) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table, id, false), nil, nil)
}

func withoutID(row rowstore.Row) rowstore.Row {
	if _, ok := row["id"]; !ok {
		return row
	}
	out := make(rowstore.Row, len(row))
	for k, v := range row {
		if k != "id" {
			out[k] = v
		}
	}
	return out
}
