package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

var searchFields = []string{
	"nickName^3", "species^2", "genus^2", "specimenId^2",
	"category", "material", "manufacturer", "anthropologist",
	"regionFound", "countryFound", "location", "description", "notes",
}

// SpecimenIndex keeps a searchable copy of specimens in Elasticsearch.
type SpecimenIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewSpecimenIndex(es *elasticsearch.Client, index string) *SpecimenIndex {
	return &SpecimenIndex{es: es, index: index}
}

// indexedSpecimen is the document source. The outer ID shadows the
// specimen's "_id" field and stays empty, since Elasticsearch rejects
// metadata fields inside a source.
type indexedSpecimen struct {
	entity.Specimen
	ID string `json:"_id,omitempty"`
}

func (x *SpecimenIndex) Index(ctx context.Context, s *entity.Specimen) error {
	b, err := json.Marshal(indexedSpecimen{Specimen: *s})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: s.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *SpecimenIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match query and returns hits in relevance order.
func (x *SpecimenIndex) Search(ctx context.Context, query string, size int) ([]entity.Specimen, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    searchFields,
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	})
	if err != nil {
		return nil, err
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		// A missing index just means nothing has been indexed yet.
		if res.StatusCode == http.StatusNotFound {
			return []entity.Specimen{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source entity.Specimen `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es decode: %w", err)
	}

	out := make([]entity.Specimen, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		s := h.Source
		s.ID = h.ID
		out = append(out, s)
	}
	return out, nil
}

var _ repository.SpecimenIndex = (*SpecimenIndex)(nil)
