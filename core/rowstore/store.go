// Package rowstore defines the generic table-row store FocoLog persists to.
// The system of record is a hosted row database addressed by numeric table
// identifiers; the local backend emulates the same contract on gorm.
package rowstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TableID selects a table in the row database.
type TableID int

// Row is a single record keyed by user field name.
type Row map[string]interface{}

// ID returns the row identifier, 0 when absent.
func (r Row) ID() int64 {
	switch v := r["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	}
	return 0
}

const (
	DefaultPageSize = 100
	MaxPageSize     = 200
)

// ListOptions mirrors the query parameters of the hosted list endpoint.
type ListOptions struct {
	Page    int
	Size    int
	Search  string
	OrderBy string // field name, "-field" for descending
	Filters map[string]string
}

// Normalize clamps paging to valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Size <= 0 {
		o.Size = DefaultPageSize
	}
	if o.Size > MaxPageSize {
		o.Size = MaxPageSize
	}
	return o
}

// FilterKeys returns the filter field names in stable order.
func (o ListOptions) FilterKeys() []string {
	keys := make([]string, 0, len(o.Filters))
	for k := range o.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Page is one page of list results.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Row   `json:"results"`
}

// Store is the CRUD contract of the row database.
type Store interface {
	List(ctx context.Context, table TableID, opts ListOptions) (*Page, error)
	Get(ctx context.Context, table TableID, id int64) (Row, error)
	Create(ctx context.Context, table TableID, row Row) (Row, error)
	// Update applies a partial update and returns the full row.
	Update(ctx context.Context, table TableID, id int64, fields Row) (Row, error)
	Delete(ctx context.Context, table TableID, id int64) error
}

var (
	ErrNotFound      = errors.New("rowstore: row not found")
	ErrNotConfigured = errors.New("rowstore: backend not configured")
)

// APIError is a non-2xx answer from the hosted row API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rowstore: api status %d: %s", e.Status, e.Body)
}

// ListAll walks every page of a listing.
func ListAll(ctx context.Context, s Store, table TableID, opts ListOptions) ([]Row, error) {
	opts = opts.Normalize()
	opts.Size = MaxPageSize
	var rows []Row
	for {
		page, err := s.List(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Results...)
		if page.Next == nil || len(page.Results) == 0 {
			return rows, nil
		}
		opts.Page++
	}
}

// matchRow applies equality filters and a case-insensitive search.
func matchRow(row Row, opts ListOptions) bool {
	for field, want := range opts.Filters {
		if stringify(row[field]) != want {
			return false
		}
	}
	if opts.Search == "" {
		return true
	}
	needle := strings.ToLower(opts.Search)
	for k, v := range row {
		if k == "id" {
			continue
		}
		if strings.Contains(strings.ToLower(stringify(v)), needle) {
			return true
		}
	}
	return false
}

// sortRows orders rows by opts.OrderBy, then by id.
func sortRows(rows []Row, orderBy string) {
	field, desc := orderBy, false
	if strings.HasPrefix(field, "-") {
		field, desc = field[1:], true
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if field != "" && field != "id" {
			if c := compareValues(rows[i][field], rows[j][field]); c != 0 {
				if desc {
					return c > 0
				}
				return c < 0
			}
			return rows[i].ID() < rows[j].ID()
		}
		if desc {
			return rows[i].ID() > rows[j].ID()
		}
		return rows[i].ID() < rows[j].ID()
	})
}

func compareValues(a, b interface{}) int {
	as, bs := stringify(a), stringify(b)
	af, aErr := strconv.ParseFloat(as, 64)
	bf, bErr := strconv.ParseFloat(bs, 64)
	if aErr == nil && bErr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	at, aErr := time.Parse(time.RFC3339Nano, as)
	bt, bErr := time.Parse(time.RFC3339Nano, bs)
	if aErr == nil && bErr == nil {
		return at.Compare(bt)
	}
	return strings.Compare(as, bs)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
