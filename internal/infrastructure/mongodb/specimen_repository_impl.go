package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
)

// specimenDocument is the stored shape of a specimen.
type specimenDocument struct {
	ID                  primitive.ObjectID `bson:"_id"`
	Category            string             `bson:"category,omitempty"`
	Genus               string             `bson:"genus,omitempty"`
	Species             string             `bson:"species,omitempty"`
	NickName            string             `bson:"nickName,omitempty"`
	SpecimenID          string             `bson:"specimenId,omitempty"`
	Material            string             `bson:"material,omitempty"`
	ManufacturerID      string             `bson:"manufacturerId,omitempty"`
	Manufacturer        string             `bson:"manufacturer,omitempty"`
	CountryManufactured string             `bson:"countryManufactured,omitempty"`
	Anthropologist      string             `bson:"anthropologist,omitempty"`
	ActiveValue         float64            `bson:"activeValue,omitempty"`
	PaidValue           float64            `bson:"paidValue,omitempty"`
	DateOfPurchase      *time.Time         `bson:"dateOfPurchase,omitempty"`
	Purchaser           string             `bson:"purchaser,omitempty"`
	RegionFound         string             `bson:"regionFound,omitempty"`
	CountryFound        string             `bson:"countryFound,omitempty"`
	Location            string             `bson:"location,omitempty"`
	Description         string             `bson:"description,omitempty"`
	Notes               string             `bson:"notes,omitempty"`
	Images              string             `bson:"images,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func toDocument(s *entity.Specimen, id primitive.ObjectID) specimenDocument {
	return specimenDocument{
		ID:                  id,
		Category:            s.Category,
		Genus:               s.Genus,
		Species:             s.Species,
		NickName:            s.NickName,
		SpecimenID:          s.SpecimenID,
		Material:            s.Material,
		ManufacturerID:      s.ManufacturerID,
		Manufacturer:        s.Manufacturer,
		CountryManufactured: s.CountryManufactured,
		Anthropologist:      s.Anthropologist,
		ActiveValue:         s.ActiveValue,
		PaidValue:           s.PaidValue,
		DateOfPurchase:      s.DateOfPurchase,
		Purchaser:           s.Purchaser,
		RegionFound:         s.RegionFound,
		CountryFound:        s.CountryFound,
		Location:            s.Location,
		Description:         s.Description,
		Notes:               s.Notes,
		Images:              s.ImageURL,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (d specimenDocument) toEntity() entity.Specimen {
	return entity.Specimen{
		ID:                  d.ID.Hex(),
		Category:            d.Category,
		Genus:               d.Genus,
		Species:             d.Species,
		NickName:            d.NickName,
		SpecimenID:          d.SpecimenID,
		Material:            d.Material,
		ManufacturerID:      d.ManufacturerID,
		Manufacturer:        d.Manufacturer,
		CountryManufactured: d.CountryManufactured,
		Anthropologist:      d.Anthropologist,
		ActiveValue:         d.ActiveValue,
		PaidValue:           d.PaidValue,
		DateOfPurchase:      d.DateOfPurchase,
		Purchaser:           d.Purchaser,
		RegionFound:         d.RegionFound,
		CountryFound:        d.CountryFound,
		Location:            d.Location,
		Description:         d.Description,
		Notes:               d.Notes,
		ImageURL:            d.Images,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// SpecimenRepository handles specimen CRUD in a single MongoDB collection.
type SpecimenRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSpecimenRepository(db *mongo.Database, collection string) *SpecimenRepository {
	return &SpecimenRepository{col: db.Collection(collection), now: time.Now}
}

// EnsureIndexes creates the indexes used by listing and category counts.
func (r *SpecimenRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}
	return nil
}

// Mongo keeps millisecond precision; truncating up front keeps the returned
// entity equal to what a later read yields.
func (r *SpecimenRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func (r *SpecimenRepository) Insert(ctx context.Context, s *entity.Specimen) error {
	oid := primitive.NewObjectID()
	s.CreatedAt = r.timestamp()
	s.UpdatedAt = s.CreatedAt
	if _, err := r.col.InsertOne(ctx, toDocument(s, oid)); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	s.ID = oid.Hex()
	return nil
}

func (r *SpecimenRepository) FindAll(ctx context.Context, limit int64) ([]entity.Specimen, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []specimenDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	out := make([]entity.Specimen, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *SpecimenRepository) FindByID(ctx context.Context, id string) (*entity.Specimen, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc specimenDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	s := doc.toEntity()
	return &s, nil
}

func (r *SpecimenRepository) UpdateByID(ctx context.Context, id string, patch entity.SpecimenPatch) (*entity.Specimen, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc specimenDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(patch, r.timestamp()), opts).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	s := doc.toEntity()
	return &s, nil
}

func (r *SpecimenRepository) DeleteByID(ctx context.Context, id string) (*entity.Specimen, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc specimenDocument
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	s := doc.toEntity()
	return &s, nil
}

func (r *SpecimenRepository) Count(ctx context.Context, filter entity.SpecimenFilter) (int64, error) {
	n, err := r.col.CountDocuments(ctx, countFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("mongo count: %w", err)
	}
	return n, nil
}

func (r *SpecimenRepository) Sum(ctx context.Context, field entity.ValueField, greaterThan float64) (float64, error) {
	cur, err := r.col.Aggregate(ctx, sumPipeline(field, greaterThan))
	if err != nil {
		return 0, fmt.Errorf("mongo aggregate: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("mongo decode: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// updateDocument builds a $set that touches only the patch's present fields.
// Cleared fields go to $unset.
func updateDocument(patch entity.SpecimenPatch, now time.Time) bson.M {
	set := bson.M{}
	unset := bson.M{}
	for k, v := range patch.Fields() {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = now
	upd := bson.M{"$set": set}
	if len(unset) > 0 {
		upd["$unset"] = unset
	}
	return upd
}

func countFilter(f entity.SpecimenFilter) bson.M {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	return filter
}

func sumPipeline(field entity.ValueField, greaterThan float64) mongo.Pipeline {
	name := string(field)
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: name, Value: bson.D{{Key: "$gt", Value: greaterThan}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + name}}},
		}}},
	}
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("mongo: %w", err)
}

var _ repository.SpecimenRepository = (*SpecimenRepository)(nil)
