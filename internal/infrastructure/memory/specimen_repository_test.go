package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestSpecimenRepository_InsertAssignsIdentity(t *testing.T) {
	repo := NewSpecimenRepository()
	ctx := context.Background()

	s := &entity.Specimen{Species: "Homo erectus"}
	if err := repo.Insert(ctx, s); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if s.CreatedAt.IsZero() || !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v and %v", s.CreatedAt, s.UpdatedAt)
	}

	got, err := repo.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Species != "Homo erectus" {
		t.Errorf("expected species to round-trip, got %q", got.Species)
	}
}

func TestSpecimenRepository_FindAllOrderAndLimit(t *testing.T) {
	repo := NewSpecimenRepository()
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }
	ctx := context.Background()

	var ids []string
	for i := 0; i < 7; i++ {
		s := &entity.Specimen{}
		if err := repo.Insert(ctx, s); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, s.ID)
	}

	all, err := repo.FindAll(ctx, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 7 {
		t.Fatalf("expected 7, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if !all[i-1].CreatedAt.After(all[i].CreatedAt) {
			t.Fatalf("not strictly newest first at %d", i)
		}
	}
	if all[0].ID != ids[6] {
		t.Errorf("expected newest %s first, got %s", ids[6], all[0].ID)
	}

	limited, _ := repo.FindAll(ctx, 5)
	if len(limited) != 5 {
		t.Errorf("expected 5, got %d", len(limited))
	}
}

func TestSpecimenRepository_UpdateMergesPresentFields(t *testing.T) {
	repo := NewSpecimenRepository()
	ctx := context.Background()
	s := &entity.Specimen{Species: "robustus", NickName: "Old", PaidValue: 40, ImageURL: "https://img/1.jpg"}
	_ = repo.Insert(ctx, s)

	got, err := repo.UpdateByID(ctx, s.ID, entity.SpecimenPatch{NickName: strPtr("New"), PaidValue: numPtr(0)})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if got.NickName != "New" || got.PaidValue != 0 {
		t.Errorf("expected present fields written, got %+v", got)
	}
	if got.Species != "robustus" || got.ImageURL != "https://img/1.jpg" {
		t.Errorf("expected absent fields kept, got %+v", got)
	}
	if !got.CreatedAt.Equal(s.CreatedAt) {
		t.Error("createdAt changed on update")
	}
}

func TestSpecimenRepository_NotFound(t *testing.T) {
	repo := NewSpecimenRepository()
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.UpdateByID(ctx, "missing", entity.SpecimenPatch{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("UpdateByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.DeleteByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("DeleteByID: expected ErrNotFound, got %v", err)
	}
}

func TestSpecimenRepository_CountAndSum(t *testing.T) {
	repo := NewSpecimenRepository()
	ctx := context.Background()
	for _, s := range []entity.Specimen{
		{Category: "skull", PaidValue: 100, ActiveValue: 1},
		{Category: "skull", PaidValue: 0, ActiveValue: 300},
		{Category: "tool", PaidValue: 50, ActiveValue: -5},
	} {
		s := s
		_ = repo.Insert(ctx, &s)
	}

	tests := []struct {
		name  string
		field entity.ValueField
		want  float64
	}{
		{"paid", entity.PaidValue, 150},
		{"active", entity.ActiveValue, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Sum(ctx, tt.field, 1)
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	n, _ := repo.Count(ctx, entity.SpecimenFilter{})
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
	n, _ = repo.Count(ctx, entity.SpecimenFilter{Category: strPtr("skull")})
	if n != 2 {
		t.Errorf("expected 2 skulls, got %d", n)
	}
}

func TestSpecimenRepository_CancelledContext(t *testing.T) {
	repo := NewSpecimenRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.FindAll(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
