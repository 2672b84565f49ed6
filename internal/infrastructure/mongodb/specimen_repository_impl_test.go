package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

func TestUpdateDocumentOnlySetsPresentFields(t *testing.T) {
	nick := "Lucy"
	zero := 0.0
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	upd := updateDocument(entity.SpecimenPatch{NickName: &nick, PaidValue: &zero}, now)
	set, ok := upd["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected $set document, got %#v", upd)
	}
	if len(set) != 3 {
		t.Fatalf("expected nickName, paidValue and updatedAt, got %v", set)
	}
	if set["nickName"] != "Lucy" || set["paidValue"] != 0.0 {
		t.Errorf("unexpected values: %v", set)
	}
	if _, ok := set["images"]; ok {
		t.Error("images must not be touched when absent")
	}
	if _, ok := set["species"]; ok {
		t.Error("species must not be touched when absent")
	}
}

func TestUpdateDocumentUnsetsClearedDate(t *testing.T) {
	upd := updateDocument(entity.SpecimenPatch{ClearDateOfPurchase: true}, time.Now())
	unset, ok := upd["$unset"].(bson.M)
	if !ok {
		t.Fatalf("expected $unset document, got %#v", upd)
	}
	if _, ok := unset["dateOfPurchase"]; !ok {
		t.Errorf("dateOfPurchase not unset: %v", unset)
	}
	set := upd["$set"].(bson.M)
	if _, ok := set["dateOfPurchase"]; ok {
		t.Error("a cleared field must not also be set")
	}
	if _, ok := set["updatedAt"]; !ok {
		t.Error("updatedAt must still be set")
	}
	if _, ok := updateDocument(entity.SpecimenPatch{}, time.Now())["$unset"]; ok {
		t.Error("$unset must be omitted when nothing is cleared")
	}
}

func TestCountFilter(t *testing.T) {
	if f := countFilter(entity.SpecimenFilter{}); len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}
	cat := "skull"
	if f := countFilter(entity.SpecimenFilter{Category: &cat}); f["category"] != "skull" {
		t.Errorf("expected category filter, got %v", f)
	}
}

func TestSumPipeline(t *testing.T) {
	p := sumPipeline(entity.PaidValue, 1)
	if len(p) != 2 {
		t.Fatalf("expected $match and $group stages, got %d", len(p))
	}
	if p[0][0].Key != "$match" || p[1][0].Key != "$group" {
		t.Errorf("unexpected stage order: %v", p)
	}
	match := p[0][0].Value.(bson.D)
	if match[0].Key != "paidValue" {
		t.Errorf("expected match on paidValue, got %s", match[0].Key)
	}
	cond := match[0].Value.(bson.D)
	if cond[0].Key != "$gt" || cond[0].Value != 1.0 {
		t.Errorf("expected $gt 1, got %v", cond)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2019, 7, 4, 0, 0, 0, 0, time.UTC)
	s := &entity.Specimen{Species: "sapiens", PaidValue: 10, DateOfPurchase: &when, ImageURL: "u"}

	got := toDocument(s, oid).toEntity()
	if got.ID != oid.Hex() || got.Species != "sapiens" || got.ImageURL != "u" || !got.DateOfPurchase.Equal(when) {
		t.Errorf("unexpected entity: %+v", got)
	}
}

func TestTranslate(t *testing.T) {
	if err := translate(mongo.ErrNoDocuments); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	boom := errors.New("socket closed")
	if err := translate(boom); errors.Is(err, repository.ErrNotFound) || !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	// No round trip happens for ids that cannot be ObjectIDs.
	r := &SpecimenRepository{}
	ctx := context.Background()
	if _, err := r.FindByID(ctx, "not-an-object-id"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
	if _, err := r.UpdateByID(ctx, "zzz", entity.SpecimenPatch{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("UpdateByID: expected ErrNotFound, got %v", err)
	}
	if _, err := r.DeleteByID(ctx, ""); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("DeleteByID: expected ErrNotFound, got %v", err)
	}
}
