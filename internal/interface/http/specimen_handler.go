package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	repo "github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/response"
	"github.com/oksasatya/specimen-catalog/pkg/validation"
)

const imageField = "image"

type SpecimenHandler struct {
	Svc            *application.SpecimenService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewSpecimenHandler(svc *application.SpecimenService, logger *logrus.Logger, maxUploadBytes int64) *SpecimenHandler {
	return &SpecimenHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// specimenRequest binds from JSON, multipart or urlencoded bodies. Pointer
// fields stay nil when the key is absent.
type specimenRequest struct {
	Category            *string  `json:"category" form:"category" binding:"omitempty,label"`
	Genus               *string  `json:"genus" form:"genus" binding:"omitempty,label"`
	Species             *string  `json:"species" form:"species" binding:"omitempty,label"`
	NickName            *string  `json:"nickName" form:"nickName" binding:"omitempty,label"`
	SpecimenID          *string  `json:"specimenId" form:"specimenId" binding:"omitempty,label"`
	Material            *string  `json:"material" form:"material" binding:"omitempty,label"`
	ManufacturerID      *string  `json:"manufacturerId" form:"manufacturerId" binding:"omitempty,label"`
	Manufacturer        *string  `json:"manufacturer" form:"manufacturer" binding:"omitempty,label"`
	CountryManufactured *string  `json:"countryManufactured" form:"countryManufactured" binding:"omitempty,label"`
	Anthropologist      *string  `json:"anthropologist" form:"anthropologist" binding:"omitempty,label"`
	ActiveValue         *float64 `json:"activeValue" form:"activeValue"`
	PaidValue           *float64 `json:"paidValue" form:"paidValue"`
	DateOfPurchase      *string  `json:"dateOfPurchase" form:"dateOfPurchase"`
	Purchaser           *string  `json:"purchaser" form:"purchaser" binding:"omitempty,label"`
	RegionFound         *string  `json:"regionFound" form:"regionFound" binding:"omitempty,label"`
	CountryFound        *string  `json:"countryFound" form:"countryFound" binding:"omitempty,label"`
	Location            *string  `json:"location" form:"location" binding:"omitempty,label"`
	Description         *string  `json:"description" form:"description" binding:"omitempty,longtext"`
	Notes               *string  `json:"notes" form:"notes" binding:"omitempty,longtext"`
}

func (r specimenRequest) toPatch() (entity.SpecimenPatch, error) {
	p := entity.SpecimenPatch{
		Category:            r.Category,
		Genus:               r.Genus,
		Species:             r.Species,
		NickName:            r.NickName,
		SpecimenID:          r.SpecimenID,
		Material:            r.Material,
		ManufacturerID:      r.ManufacturerID,
		Manufacturer:        r.Manufacturer,
		CountryManufactured: r.CountryManufactured,
		Anthropologist:      r.Anthropologist,
		ActiveValue:         r.ActiveValue,
		PaidValue:           r.PaidValue,
		Purchaser:           r.Purchaser,
		RegionFound:         r.RegionFound,
		CountryFound:        r.CountryFound,
		Location:            r.Location,
		Description:         r.Description,
		Notes:               r.Notes,
	}
	if r.DateOfPurchase != nil {
		if strings.TrimSpace(*r.DateOfPurchase) == "" {
			p.ClearDateOfPurchase = true
			return p, nil
		}
		d, err := parseDate(*r.DateOfPurchase)
		if err != nil {
			return p, err
		}
		p.DateOfPurchase = &d
	}
	return p, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("dateOfPurchase must be RFC 3339 or YYYY-MM-DD, got %q", s)
}

// bind reads the field set and the optional image file.
func (h *SpecimenHandler) bind(c *gin.Context) (entity.SpecimenPatch, *repo.ImageFile, bool) {
	var req specimenRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return entity.SpecimenPatch{}, nil, false
		}
	}
	patch, err := req.toPatch()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"dateOfPurchase": err.Error()})
		return entity.SpecimenPatch{}, nil, false
	}

	img, err := h.imageFile(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid image", map[string]string{imageField: err.Error()})
		return entity.SpecimenPatch{}, nil, false
	}
	return patch, img, true
}

func (h *SpecimenHandler) imageFile(c *gin.Context) (*repo.ImageFile, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		return nil, fmt.Errorf("must be at most %d bytes", h.MaxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &repo.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}, nil
}

// List GET /api/specimens
func (h *SpecimenHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "failed to get specimens", err)
		return
	}
	response.Success(c, http.StatusOK, items, "specimens", gin.H{"count": len(items)})
}

// Get GET /api/specimens/:id
func (h *SpecimenHandler) Get(c *gin.Context) {
	sp, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "specimen not found", err)
		return
	}
	response.Success(c, http.StatusOK, sp, "specimen", nil)
}

// Create POST /api/specimens
func (h *SpecimenHandler) Create(c *gin.Context) {
	patch, img, ok := h.bind(c)
	if !ok {
		return
	}
	sp, err := h.Svc.Create(c.Request.Context(), patch, img)
	if err != nil {
		fail(c, h.Logger, "failed to create specimen", err)
		return
	}
	response.Success(c, http.StatusCreated, sp, "specimen created", nil)
}

// Update PUT/PATCH /api/specimens/:id
func (h *SpecimenHandler) Update(c *gin.Context) {
	patch, img, ok := h.bind(c)
	if !ok {
		return
	}
	sp, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch, img)
	if err != nil {
		fail(c, h.Logger, "failed to update specimen", err)
		return
	}
	response.Success(c, http.StatusOK, sp, "Specimen updated successfully", nil)
}

// Delete DELETE /api/specimens/:id
func (h *SpecimenHandler) Delete(c *gin.Context) {
	sp, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, "Specimen not found", err)
		return
	}
	response.Success(c, http.StatusOK, sp, "Successfully deleted specimen", nil)
}

// Count GET /api/specimens/count
func (h *SpecimenHandler) Count(c *gin.Context) {
	n, err := h.Svc.Count(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "failed to count specimens", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "count", nil)
}

// CountByCategory GET /api/specimens/count/:category
func (h *SpecimenHandler) CountByCategory(c *gin.Context) {
	category := c.Param("category")
	n, err := h.Svc.CountByCategory(c.Request.Context(), category)
	if err != nil {
		fail(c, h.Logger, "failed to count specimens", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "count", gin.H{"category": category})
}

// TotalCost GET /api/specimens/total-cost
func (h *SpecimenHandler) TotalCost(c *gin.Context) {
	v, err := h.Svc.TotalCost(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "failed to total cost", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalCost": v}, "total cost", nil)
}

// CurrentValue GET /api/specimens/current-value
func (h *SpecimenHandler) CurrentValue(c *gin.Context) {
	v, err := h.Svc.CurrentValue(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "failed to total current value", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"currentVal": v}, "current value", nil)
}

// Recent GET /api/specimens/recent
func (h *SpecimenHandler) Recent(c *gin.Context) {
	items, err := h.Svc.Recent(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "failed to get recent specimens", err)
		return
	}
	response.Success(c, http.StatusOK, items, "Recent specimens", nil)
}

// Search GET /api/specimens/search?q=&size=
func (h *SpecimenHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, h.Logger, "search failed", err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", gin.H{"query": q, "count": len(items)})
}
