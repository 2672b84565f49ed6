package application

import (
	"bytes"
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	repo "github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/imaging"
)

const (
	// MinCountedValue is the exclusive lower bound for values that count
	// toward the cost and value totals. Zero and placeholder values of 1 are
	// left out of the sums.
	MinCountedValue = 1.0

	// RecentLimit caps the recent-specimens listing.
	RecentLimit = 5

	defaultSearchSize = 20
	maxSearchSize     = 100
)

var specimenStats = expvar.NewMap("specimens")

// SpecimenService holds the specimen use cases. It keeps no state of its
// own beyond injected collaborators.
type SpecimenService struct {
	Repo     repo.SpecimenRepository
	Uploader repo.ImageUploader
	Index    repo.SpecimenIndex
	Logger   *logrus.Logger

	StoreTimeout  time.Duration
	UploadTimeout time.Duration
}

func NewSpecimenService(r repo.SpecimenRepository, up repo.ImageUploader, idx repo.SpecimenIndex, logger *logrus.Logger, storeTimeout, uploadTimeout time.Duration) *SpecimenService {
	return &SpecimenService{
		Repo:          r,
		Uploader:      up,
		Index:         idx,
		Logger:        logger,
		StoreTimeout:  storeTimeout,
		UploadTimeout: uploadTimeout,
	}
}

func (s *SpecimenService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}

func (s *SpecimenService) logger() logrus.FieldLogger {
	if s.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return s.Logger
}

// classify turns adapter errors into service failure kinds.
func classify(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUpstream, err)
}

func (s *SpecimenService) List(ctx context.Context) ([]entity.Specimen, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	out, err := s.Repo.FindAll(c, 0)
	if err != nil {
		return nil, classify("list specimens", err)
	}
	return out, nil
}

func (s *SpecimenService) Get(ctx context.Context, id string) (*entity.Specimen, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("get specimen: %w", ErrNotFound)
	}
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	sp, err := s.Repo.FindByID(c, id)
	if err != nil {
		return nil, classify("get specimen", err)
	}
	return sp, nil
}

// Create uploads img when present and persists the specimen only after the
// upload succeeds. Without an image the image URL stays unset.
func (s *SpecimenService) Create(ctx context.Context, patch entity.SpecimenPatch, img *repo.ImageFile) (*entity.Specimen, error) {
	patch.ImageURL = nil
	if patch.IsEmpty() && img == nil {
		return nil, fmt.Errorf("create specimen: %w: no fields submitted", ErrValidation)
	}
	if err := validatePatch(patch); err != nil {
		return nil, fmt.Errorf("create specimen: %w", err)
	}

	if img != nil {
		url, err := s.upload(ctx, *img)
		if err != nil {
			return nil, fmt.Errorf("create specimen: %w", err)
		}
		patch.ImageURL = &url
	}

	sp := &entity.Specimen{}
	patch.Apply(sp)

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Repo.Insert(c, sp); err != nil {
		s.logOrphan(patch.ImageURL, err)
		return nil, classify("create specimen", err)
	}

	specimenStats.Add("created", 1)
	s.reindex(ctx, sp)
	s.logger().WithField("specimen_id", sp.ID).Info("specimen created")
	return sp, nil
}

// Update merges the present fields into the stored specimen. A new image
// replaces the URL; without one the existing URL is kept.
func (s *SpecimenService) Update(ctx context.Context, id string, patch entity.SpecimenPatch, img *repo.ImageFile) (*entity.Specimen, error) {
	patch.ImageURL = nil
	if patch.IsEmpty() && img == nil {
		return nil, fmt.Errorf("update specimen: %w: no fields submitted", ErrValidation)
	}
	if err := validatePatch(patch); err != nil {
		return nil, fmt.Errorf("update specimen: %w", err)
	}

	// Fail fast on unknown ids before spending an upload.
	if img != nil {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		url, err := s.upload(ctx, *img)
		if err != nil {
			return nil, fmt.Errorf("update specimen: %w", err)
		}
		patch.ImageURL = &url
	}

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	sp, err := s.Repo.UpdateByID(c, id, patch)
	if err != nil {
		s.logOrphan(patch.ImageURL, err)
		return nil, classify("update specimen", err)
	}

	specimenStats.Add("updated", 1)
	s.reindex(ctx, sp)
	return sp, nil
}

func (s *SpecimenService) Delete(ctx context.Context, id string) (*entity.Specimen, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("delete specimen: %w", ErrNotFound)
	}
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	sp, err := s.Repo.DeleteByID(c, id)
	if err != nil {
		return nil, classify("delete specimen", err)
	}

	specimenStats.Add("deleted", 1)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, sp.ID); err != nil {
			s.logger().WithError(err).WithField("specimen_id", sp.ID).Warn("search index remove failed")
		}
	}
	return sp, nil
}

func (s *SpecimenService) Count(ctx context.Context) (int64, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	n, err := s.Repo.Count(c, entity.SpecimenFilter{})
	if err != nil {
		return 0, classify("count specimens", err)
	}
	return n, nil
}

func (s *SpecimenService) CountByCategory(ctx context.Context, category string) (int64, error) {
	if strings.TrimSpace(category) == "" {
		return 0, fmt.Errorf("count by category: %w: category is required", ErrValidation)
	}
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	n, err := s.Repo.Count(c, entity.SpecimenFilter{Category: &category})
	if err != nil {
		return 0, classify("count by category", err)
	}
	return n, nil
}

// TotalCost sums paidValue over specimens with paidValue > MinCountedValue.
func (s *SpecimenService) TotalCost(ctx context.Context) (float64, error) {
	return s.sum(ctx, entity.PaidValue)
}

// CurrentValue sums activeValue over specimens with activeValue > MinCountedValue.
func (s *SpecimenService) CurrentValue(ctx context.Context) (float64, error) {
	return s.sum(ctx, entity.ActiveValue)
}

func (s *SpecimenService) sum(ctx context.Context, field entity.ValueField) (float64, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	v, err := s.Repo.Sum(c, field, MinCountedValue)
	if err != nil {
		return 0, classify("sum "+string(field), err)
	}
	return v, nil
}

// Recent returns at most RecentLimit specimens, newest first.
func (s *SpecimenService) Recent(ctx context.Context) ([]entity.Specimen, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	out, err := s.Repo.FindAll(c, RecentLimit)
	if err != nil {
		return nil, classify("recent specimens", err)
	}
	return out, nil
}

// Search queries the full-text index. size <= 0 uses the default page size.
func (s *SpecimenService) Search(ctx context.Context, q string, size int) ([]entity.Specimen, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("search specimens: %w: query is required", ErrValidation)
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	if s.Index == nil {
		return []entity.Specimen{}, nil
	}
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	out, err := s.Index.Search(c, q, size)
	if err != nil {
		return nil, fmt.Errorf("search specimens: %w: %v", ErrUpstream, err)
	}
	return out, nil
}

// upload normalises the image and sends it to the image host.
func (s *SpecimenService) upload(ctx context.Context, img repo.ImageFile) (string, error) {
	photo, err := imaging.Normalize(img.Body)
	if err != nil {
		return "", fmt.Errorf("%w: image: %v", ErrValidation, err)
	}
	if s.Uploader == nil {
		return "", fmt.Errorf("%w: image uploads are not configured", ErrUpstream)
	}

	c := ctx
	if s.UploadTimeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(ctx, s.UploadTimeout)
		defer cancel()
	}
	url, err := s.Uploader.Upload(c, repo.ImageFile{
		Filename:    img.Filename,
		ContentType: photo.ContentType,
		Size:        int64(len(photo.Data)),
		Body:        bytes.NewReader(photo.Data),
	})
	if err != nil {
		specimenStats.Add("upload_failures", 1)
		s.logger().WithError(err).WithField("filename", img.Filename).Error("image upload failed")
		return "", fmt.Errorf("%w: image upload: %v", ErrUpstream, err)
	}
	specimenStats.Add("uploads", 1)
	return url, nil
}

// logOrphan records an uploaded image whose specimen was never written.
func (s *SpecimenService) logOrphan(url *string, err error) {
	if url == nil {
		return
	}
	s.logger().WithError(err).WithField("image_url", *url).Warn("image uploaded but specimen not saved")
}

func (s *SpecimenService) reindex(ctx context.Context, sp *entity.Specimen) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, sp); err != nil {
		s.logger().WithError(err).WithField("specimen_id", sp.ID).Warn("search index update failed")
	}
}

func validatePatch(p entity.SpecimenPatch) error {
	for name, v := range map[string]*float64{"activeValue": p.ActiveValue, "paidValue": p.PaidValue} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be a finite number", ErrValidation, name)
		}
	}
	return nil
}
