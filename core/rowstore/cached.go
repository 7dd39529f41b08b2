package rowstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focolog/core/cache"
)

// CachedStore caches reads per table and drops a table's entries on any
// write to it.
type CachedStore struct {
	next  Store
	cache cache.Store
	ttl   time.Duration
}

func NewCachedStore(next Store, c cache.Store, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, cache: c, ttl: ttl}
}

func tableTag(table TableID) string {
	return fmt.Sprintf("table:%d", table)
}

func listKey(table TableID, opts ListOptions) string {
	filters := make([]string, 0, len(opts.Filters))
	for _, k := range opts.FilterKeys() {
		filters = append(filters, k+"="+opts.Filters[k])
	}
	return cache.Key("rows", int(table), opts.Page, opts.Size, opts.Search, opts.OrderBy, strings.Join(filters, "&"))
}

func (s *CachedStore) List(ctx context.Context, table TableID, opts ListOptions) (*Page, error) {
	opts = opts.Normalize()
	key := listKey(table, opts)
	var page Page
	if cache.GetJSON(ctx, s.cache, key, &page) {
		return &page, nil
	}
	p, err := s.next.List(ctx, table, opts)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, s.cache, key, p, s.ttl, tableTag(table))
	return p, nil
}

func (s *CachedStore) Get(ctx context.Context, table TableID, id int64) (Row, error) {
	key := cache.Key("row", int(table), id)
	var row Row
	if cache.GetJSON(ctx, s.cache, key, &row) {
		return row, nil
	}
	row, err := s.next.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, s.cache, key, row, s.ttl, tableTag(table))
	return row, nil
}

func (s *CachedStore) Create(ctx context.Context, table TableID, row Row) (Row, error) {
	out, err := s.next.Create(ctx, table, row)
	if err == nil {
		s.cache.DeleteByTag(ctx, tableTag(table))
	}
	return out, err
}

func (s *CachedStore) Update(ctx context.Context, table TableID, id int64, fields Row) (Row, error) {
	out, err := s.next.Update(ctx, table, id, fields)
	if err == nil {
		s.cache.DeleteByTag(ctx, tableTag(table))
	}
	return out, err
}

func (s *CachedStore) Delete(ctx context.Context, table TableID, id int64) error {
	err := s.next.Delete(ctx, table, id)
	if err == nil {
		s.cache.DeleteByTag(ctx, tableTag(table))
	}
	return err
}
