package repository

import (
	"context"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
)

// SpecimenIndex is a full-text index over specimens. It is a secondary copy
// of the record store; callers treat write failures as non-fatal.
type SpecimenIndex interface {
	Index(ctx context.Context, s *entity.Specimen) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]entity.Specimen, error)
}
