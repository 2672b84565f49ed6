package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	var createdBy *string
	if a.CreatedBy != "" {
		createdBy = &a.CreatedBy
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, name, created_by)
		VALUES (lower($1), $2, $3, $4)
		RETURNING id, email, created_at
	`, a.Email, a.PasswordHash, a.Name, createdBy)

	if err := row.Scan(&a.ID, &a.Email, &a.CreatedAt); err != nil {
		return insertError(err)
	}
	return nil
}

// insertError maps a unique violation on accounts.email to ErrDuplicate.
func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return fmt.Errorf("insert account: %w", err)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, name, COALESCE(created_by::text, ''), created_at
		FROM accounts
		WHERE id::text = $1
	`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getOne(ctx, `
		SELECT id, email, password_hash, name, COALESCE(created_by::text, ''), created_at
		FROM accounts
		WHERE email = lower($1)
	`, email)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedBy, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
