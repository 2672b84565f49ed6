package repository

import (
	"context"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}
