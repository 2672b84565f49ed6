package search

import (
	"context"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
)

// NoopIndex is used when Elasticsearch is not configured: writes are dropped
// and searches find nothing.
type NoopIndex struct{}

func (NoopIndex) Index(context.Context, *entity.Specimen) error { return nil }
func (NoopIndex) Remove(context.Context, string) error          { return nil }
func (NoopIndex) Search(context.Context, string, int) ([]entity.Specimen, error) {
	return []entity.Specimen{}, nil
}
