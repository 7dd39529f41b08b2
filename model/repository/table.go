// Package repository maps rows of the hosted tables onto entities.
package repository

import (
	"context"
	"fmt"

	"focolog/core/rowstore"
)

// Table is a typed view of one hosted table.
type Table[T any] struct {
	store rowstore.Store
	id    rowstore.TableID
	name  string
}

func NewTable[T any](store rowstore.Store, name string, id rowstore.TableID) *Table[T] {
	return &Table[T]{store: store, id: id, name: name}
}

func (t *Table[T]) ID() rowstore.TableID { return t.id }
func (t *Table[T]) Name() string         { return t.name }

func (t *Table[T]) decodeRows(rows []rowstore.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := Decode(row, &v); err != nil {
			return nil, fmt.Errorf("%s: decode row %d: %w", t.name, row.ID(), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// List returns one page and the total row count.
func (t *Table[T]) List(ctx context.Context, opts rowstore.ListOptions) ([]T, int, error) {
	page, err := t.store.List(ctx, t.id, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: list: %w", t.name, err)
	}
	items, err := t.decodeRows(page.Results)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Count, nil
}

// All returns every row matching opts.
func (t *Table[T]) All(ctx context.Context, opts rowstore.ListOptions) ([]T, error) {
	rows, err := rowstore.ListAll(ctx, t.store, t.id, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: list all: %w", t.name, err)
	}
	return t.decodeRows(rows)
}

// FindBy returns every row whose field equals value.
func (t *Table[T]) FindBy(ctx context.Context, field, value string) ([]T, error) {
	return t.All(ctx, rowstore.ListOptions{Filters: map[string]string{field: value}})
}

func (t *Table[T]) Get(ctx context.Context, id int64) (*T, error) {
	row, err := t.store.Get(ctx, t.id, id)
	if err != nil {
		return nil, fmt.Errorf("%s: get %d: %w", t.name, id, err)
	}
	return t.decode(row)
}

func (t *Table[T]) Create(ctx context.Context, v *T) (*T, error) {
	row, err := Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", t.name, err)
	}
	created, err := t.store.Create(ctx, t.id, row)
	if err != nil {
		return nil, fmt.Errorf("%s: create: %w", t.name, err)
	}
	return t.decode(created)
}

// Update applies a partial update.
func (t *Table[T]) Update(ctx context.Context, id int64, fields rowstore.Row) (*T, error) {
	updated, err := t.store.Update(ctx, t.id, id, fields)
	if err != nil {
		return nil, fmt.Errorf("%s: update %d: %w", t.name, id, err)
	}
	return t.decode(updated)
}

// Save writes every field of v to row id.
func (t *Table[T]) Save(ctx context.Context, id int64, v *T) (*T, error) {
	row, err := Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", t.name, err)
	}
	return t.Update(ctx, id, row)
}

func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if err := t.store.Delete(ctx, t.id, id); err != nil {
		return fmt.Errorf("%s: delete %d: %w", t.name, id, err)
	}
	return nil
}

func (t *Table[T]) decode(row rowstore.Row) (*T, error) {
	var v T
	if err := Decode(row, &v); err != nil {
		return nil, fmt.Errorf("%s: decode row %d: %w", t.name, row.ID(), err)
	}
	return &v, nil
}
