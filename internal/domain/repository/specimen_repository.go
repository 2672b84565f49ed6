package repository

import (
	"context"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
)

// SpecimenRepository defines the persistence contract for specimens.
type SpecimenRepository interface {
	// Insert assigns ID, CreatedAt and UpdatedAt on s.
	Insert(ctx context.Context, s *entity.Specimen) error
	// FindAll returns specimens newest first; limit <= 0 means no limit.
	FindAll(ctx context.Context, limit int64) ([]entity.Specimen, error)
	FindByID(ctx context.Context, id string) (*entity.Specimen, error)
	// UpdateByID writes only the fields present in patch and returns the merged record.
	UpdateByID(ctx context.Context, id string, patch entity.SpecimenPatch) (*entity.Specimen, error)
	// DeleteByID removes the record and returns its last state.
	DeleteByID(ctx context.Context, id string) (*entity.Specimen, error)
	Count(ctx context.Context, filter entity.SpecimenFilter) (int64, error)
	// Sum adds up field over specimens whose field is strictly greater than greaterThan.
	Sum(ctx context.Context, field entity.ValueField, greaterThan float64) (float64, error)
}
