// Package search keeps an Elasticsearch index of inventory items for the
// inventory list search box.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"focolog/config"
	"focolog/model/entity"
)

// ErrDisabled is returned when no Elasticsearch address is configured.
var ErrDisabled = errors.New("search: elasticsearch not configured")

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "long"},
      "name":      {"type": "text"},
      "category":  {"type": "text"},
      "supplier":  {"type": "text"},
      "ca_number": {"type": "keyword"},
      "type":      {"type": "keyword"}
    }
  }
}`

type Service struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// NewService builds the client from cfg. Without addresses the service is
// disabled and every call returns ErrDisabled.
func NewService(cfg config.ElasticsearchConfig, logger *zap.Logger) *Service {
	s := &Service{index: cfg.Index, logger: logger}
	if len(cfg.Addresses) == 0 {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		logger.Warn("elasticsearch client init failed, search disabled", zap.Error(err))
		return s
	}
	s.client = client
	return s
}

func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

type document struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Supplier string `json:"supplier"`
	CANumber string `json:"ca_number"`
	Type     string `json:"type"`
}

func toDocument(item entity.InventoryItem) document {
	return document{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Supplier: item.Supplier,
		CANumber: item.CANumber,
		Type:     item.Type,
	}
}

// SearchItems returns the ids of items matching query, best match first.
func (s *Service) SearchItems(ctx context.Context, query string, size int) ([]int64, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if size <= 0 {
		size = 100
	}
	body := map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"type":   "phrase_prefix",
				"fields": []string{"name^3", "category", "supplier", "ca_number"},
			},
		},
	}
	b, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}
	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		if id, err := strconv.ParseInt(hit.ID, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// IndexItem upserts one item.
func (s *Service) IndexItem(ctx context.Context, item entity.InventoryItem) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	b, _ := json.Marshal(toDocument(item))
	res, err := s.client.Index(s.index, bytes.NewReader(b),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(strconv.FormatInt(item.ID, 10)),
	)
	if err != nil {
		return fmt.Errorf("search: index %d: %w", item.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index %d: %s", item.ID, res.String())
	}
	return nil
}

// DeleteItem removes one item. Missing documents are not an error.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	res, err := s.client.Delete(s.index, strconv.FormatInt(id, 10), s.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("search: delete %d: %s", id, res.String())
	}
	return nil
}

// Reindex drops the index and bulk-loads items into a fresh one.
func (s *Service) Reindex(ctx context.Context, items []entity.InventoryItem) (int, error) {
	if !s.Enabled() {
		return 0, ErrDisabled
	}
	del, err := s.client.Indices.Delete([]string{s.index}, s.client.Indices.Delete.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("search: drop index: %w", err)
	}
	del.Body.Close()

	created, err := s.client.Indices.Create(s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return 0, fmt.Errorf("search: create index: %w", err)
	}
	created.Body.Close()
	if created.IsError() {
		return 0, fmt.Errorf("search: create index: %s", created.String())
	}
	if len(items) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, item := range items {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": s.index, "_id": strconv.FormatInt(item.ID, 10)}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(toDocument(item)); err != nil {
			return 0, err
		}
	}
	res, err := s.client.Bulk(bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("search: bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("search: bulk: %s", res.String())
	}
	var bulkResp struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err == nil && bulkResp.Errors {
		s.logger.Warn("bulk index reported item errors", zap.String("index", s.index))
	}
	s.logger.Info("inventory index rebuilt", zap.String("index", s.index), zap.Int("items", len(items)))
	return len(items), nil
}
