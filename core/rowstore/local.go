package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tableRow is the single gorm model of the local backend: every table's rows
// live here as JSON documents, like the hosted database stores them.
type tableRow struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	TableID   int            `gorm:"column:table_id;not null;index"`
	Data      datatypes.JSON `gorm:"column:data;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (tableRow) TableName() string {
	return "table_rows"
}

// LocalStore implements Store on a gorm database (sqlite or mysql).
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore migrates the row table and returns the store.
func NewLocalStore(db *gorm.DB) (*LocalStore, error) {
	if err := db.AutoMigrate(&tableRow{}); err != nil {
		return nil, fmt.Errorf("migrate table_rows: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) toRow(tr *tableRow) (Row, error) {
	row := Row{}
	if len(tr.Data) > 0 {
		if err := json.Unmarshal(tr.Data, &row); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", tr.ID, err)
		}
	}
	row["id"] = tr.ID
	return row, nil
}

// List loads the table's rows and applies filters, search, order and paging
// the way the hosted list endpoint does.
func (s *LocalStore) List(ctx context.Context, table TableID, opts ListOptions) (*Page, error) {
	opts = opts.Normalize()
	var records []tableRow
	if err := s.db.WithContext(ctx).Where("table_id = ?", int(table)).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	matched := make([]Row, 0, len(records))
	for i := range records {
		row, err := s.toRow(&records[i])
		if err != nil {
			return nil, err
		}
		if matchRow(row, opts) {
			matched = append(matched, row)
		}
	}
	sortRows(matched, opts.OrderBy)

	page := &Page{Count: len(matched), Results: []Row{}}
	start := (opts.Page - 1) * opts.Size
	if start < len(matched) {
		end := start + opts.Size
		if end > len(matched) {
			end = len(matched)
		}
		page.Results = matched[start:end]
		if end < len(matched) {
			next := fmt.Sprintf("local://table/%d/?page=%d", table, opts.Page+1)
			page.Next = &next
		}
	}
	if opts.Page > 1 {
		prev := fmt.Sprintf("local://table/%d/?page=%d", table, opts.Page-1)
		page.Previous = &prev
	}
	return page, nil
}

func (s *LocalStore) find(ctx context.Context, table TableID, id int64) (*tableRow, error) {
	var tr tableRow
	err := s.db.WithContext(ctx).Where("id = ? AND table_id = ?", id, int(table)).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (s *LocalStore) Get(ctx context.Context, table TableID, id int64) (Row, error) {
	tr, err := s.find(ctx, table, id)
	if err != nil {
		return nil, err
	}
	return s.toRow(tr)
}

func (s *LocalStore) Create(ctx context.Context, table TableID, row Row) (Row, error) {
	data, err := marshalFields(row)
	if err != nil {
		return nil, err
	}
	tr := tableRow{TableID: int(table), Data: data}
	if err := s.db.WithContext(ctx).Create(&tr).Error; err != nil {
		return nil, err
	}
	return s.toRow(&tr)
}

func (s *LocalStore) Update(ctx context.Context, table TableID, id int64, fields Row) (Row, error) {
	var out Row
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &LocalStore{db: tx}
		tr, err := store.find(ctx, table, id)
		if err != nil {
			return err
		}
		row, err := store.toRow(tr)
		if err != nil {
			return err
		}
		for k, v := range fields {
			row[k] = v
		}
		data, err := marshalFields(row)
		if err != nil {
			return err
		}
		if err := tx.Model(tr).Update("data", data).Error; err != nil {
			return err
		}
		tr.Data = data
		out, err = store.toRow(tr)
		return err
	})
	return out, err
}

func (s *LocalStore) Delete(ctx context.Context, table TableID, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ? AND table_id = ?", id, int(table)).Delete(&tableRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// marshalFields encodes a row without its id.
func marshalFields(row Row) (datatypes.JSON, error) {
	fields := make(Row, len(row))
	for k, v := range row {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	return datatypes.JSON(b), nil
}
