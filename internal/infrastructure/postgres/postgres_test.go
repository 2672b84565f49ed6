package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

func TestParsePoolConfig(t *testing.T) {
	cfg, err := parsePoolConfig(PoolConfig{
		DSN:         "postgres://u:p@localhost:5432/specimens?sslmode=disable",
		AppName:     "specimen-catalog",
		MaxConns:    8,
		MinConns:    2,
		MaxConnLife: 30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("parsePoolConfig: %v", err)
	}
	if cfg.MaxConns != 8 || cfg.MinConns != 2 || cfg.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("sizes = %d/%d/%v", cfg.MaxConns, cfg.MinConns, cfg.MaxConnLifetime)
	}
	if got := cfg.ConnConfig.RuntimeParams["application_name"]; got != "specimen-catalog" {
		t.Fatalf("application_name = %q", got)
	}
}

func TestParsePoolConfigIgnoresMinAboveMax(t *testing.T) {
	cfg, err := parsePoolConfig(PoolConfig{
		DSN:      "postgres://u:p@localhost:5432/specimens",
		MaxConns: 2,
		MinConns: 5,
	})
	if err != nil {
		t.Fatalf("parsePoolConfig: %v", err)
	}
	if cfg.MinConns > cfg.MaxConns {
		t.Fatalf("min %d > max %d", cfg.MinConns, cfg.MaxConns)
	}
}

func TestParsePoolConfigRejectsBadDSN(t *testing.T) {
	if _, err := parsePoolConfig(PoolConfig{DSN: "postgres://%zz"}); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}

func TestInsertError(t *testing.T) {
	dup := fmt.Errorf("scan: %w", &pgconn.PgError{Code: uniqueViolation})
	if err := insertError(dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("unique violation = %v, want ErrDuplicate", err)
	}
	other := &pgconn.PgError{Code: "23503"}
	err := insertError(other)
	if errors.Is(err, repository.ErrDuplicate) {
		t.Fatal("foreign key violation must not read as duplicate")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatal("original error should stay wrapped")
	}
}
