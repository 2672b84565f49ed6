package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

// AccountRepository keeps accounts in memory. Emails compare case-insensitively.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]entity.Account
	byEmail map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byID: map[string]entity.Account{}, byEmail: map[string]string{}}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicate
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	r.byID[a.ID] = *a
	r.byEmail[key] = a.ID
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := r.byID[id]
	return &a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
