package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

// SpecimenRepository is an in-memory SpecimenRepository.
// It backs local development (SPECIMEN_STORE=memory) and tests, and is safe
// for concurrent use.
type SpecimenRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Specimen
	last  time.Time
	now   func() time.Time
}

func NewSpecimenRepository() *SpecimenRepository {
	return &SpecimenRepository{items: make(map[string]entity.Specimen), now: time.Now}
}

// tick returns a timestamp strictly after the previous one so creation order
// is total even when the clock does not advance between inserts.
func (r *SpecimenRepository) tick() time.Time {
	t := r.now().UTC()
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}

func (r *SpecimenRepository) Insert(ctx context.Context, s *entity.Specimen) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = r.tick()
	s.UpdatedAt = s.CreatedAt
	r.items[s.ID] = *s
	return nil
}

func (r *SpecimenRepository) FindAll(ctx context.Context, limit int64) ([]entity.Specimen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]entity.Specimen, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SpecimenRepository) FindByID(ctx context.Context, id string) (*entity.Specimen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SpecimenRepository) UpdateByID(ctx context.Context, id string, patch entity.SpecimenPatch) (*entity.Specimen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&s)
	s.UpdatedAt = r.tick()
	r.items[id] = s
	return &s, nil
}

func (r *SpecimenRepository) DeleteByID(ctx context.Context, id string) (*entity.Specimen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.items, id)
	return &s, nil
}

func (r *SpecimenRepository) Count(ctx context.Context, filter entity.SpecimenFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, s := range r.items {
		if filter.Matches(s) {
			n++
		}
	}
	return n, nil
}

func (r *SpecimenRepository) Sum(ctx context.Context, field entity.ValueField, greaterThan float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, s := range r.items {
		if v := field.Of(s); v > greaterThan {
			total += v
		}
	}
	return total, nil
}

var _ repository.SpecimenRepository = (*SpecimenRepository)(nil)
