package entity

import "time"

// Specimen is the aggregate root of the catalog: one physical artifact.
// ID and CreatedAt are assigned by the store at insert and never change.
type Specimen struct {
	ID                  string     `json:"_id"`
	Category            string     `json:"category,omitempty"`
	Genus               string     `json:"genus,omitempty"`
	Species             string     `json:"species,omitempty"`
	NickName            string     `json:"nickName,omitempty"`
	SpecimenID          string     `json:"specimenId,omitempty"`
	Material            string     `json:"material,omitempty"`
	ManufacturerID      string     `json:"manufacturerId,omitempty"`
	Manufacturer        string     `json:"manufacturer,omitempty"`
	CountryManufactured string     `json:"countryManufactured,omitempty"`
	Anthropologist      string     `json:"anthropologist,omitempty"`
	ActiveValue         float64    `json:"activeValue"`
	PaidValue           float64    `json:"paidValue"`
	DateOfPurchase      *time.Time `json:"dateOfPurchase,omitempty"`
	Purchaser           string     `json:"purchaser,omitempty"`
	RegionFound         string     `json:"regionFound,omitempty"`
	CountryFound        string     `json:"countryFound,omitempty"`
	Location            string     `json:"location,omitempty"`
	Description         string     `json:"description,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	ImageURL            string     `json:"images,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// SpecimenPatch carries the client-supplied fields of a create or update.
// A nil pointer means the field was not submitted; a non-nil pointer is a
// value to write, even when it is "" or 0.
type SpecimenPatch struct {
	Category            *string
	Genus               *string
	Species             *string
	NickName            *string
	SpecimenID          *string
	Material            *string
	ManufacturerID      *string
	Manufacturer        *string
	CountryManufactured *string
	Anthropologist      *string
	ActiveValue         *float64
	PaidValue           *float64
	DateOfPurchase      *time.Time
	ClearDateOfPurchase bool // submitted empty; removes the stored date
	Purchaser           *string
	RegionFound         *string
	CountryFound        *string
	Location            *string
	Description         *string
	Notes               *string
	ImageURL            *string
}

// IsEmpty reports whether no field is present.
func (p SpecimenPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the present fields keyed by their stored (JSON) name. A
// cleared field maps to nil.
func (p SpecimenPatch) Fields() map[string]any {
	out := map[string]any{}
	putString(out, "category", p.Category)
	putString(out, "genus", p.Genus)
	putString(out, "species", p.Species)
	putString(out, "nickName", p.NickName)
	putString(out, "specimenId", p.SpecimenID)
	putString(out, "material", p.Material)
	putString(out, "manufacturerId", p.ManufacturerID)
	putString(out, "manufacturer", p.Manufacturer)
	putString(out, "countryManufactured", p.CountryManufactured)
	putString(out, "anthropologist", p.Anthropologist)
	if p.ActiveValue != nil {
		out["activeValue"] = *p.ActiveValue
	}
	if p.PaidValue != nil {
		out["paidValue"] = *p.PaidValue
	}
	if p.DateOfPurchase != nil {
		out["dateOfPurchase"] = p.DateOfPurchase.UTC()
	} else if p.ClearDateOfPurchase {
		out["dateOfPurchase"] = nil
	}
	putString(out, "purchaser", p.Purchaser)
	putString(out, "regionFound", p.RegionFound)
	putString(out, "countryFound", p.CountryFound)
	putString(out, "location", p.Location)
	putString(out, "description", p.Description)
	putString(out, "notes", p.Notes)
	putString(out, "images", p.ImageURL)
	return out
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

// Apply merges the present fields into s, leaving absent fields untouched.
func (p SpecimenPatch) Apply(s *Specimen) {
	setString(&s.Category, p.Category)
	setString(&s.Genus, p.Genus)
	setString(&s.Species, p.Species)
	setString(&s.NickName, p.NickName)
	setString(&s.SpecimenID, p.SpecimenID)
	setString(&s.Material, p.Material)
	setString(&s.ManufacturerID, p.ManufacturerID)
	setString(&s.Manufacturer, p.Manufacturer)
	setString(&s.CountryManufactured, p.CountryManufactured)
	setString(&s.Anthropologist, p.Anthropologist)
	if p.ActiveValue != nil {
		s.ActiveValue = *p.ActiveValue
	}
	if p.PaidValue != nil {
		s.PaidValue = *p.PaidValue
	}
	if p.DateOfPurchase != nil {
		d := p.DateOfPurchase.UTC()
		s.DateOfPurchase = &d
	} else if p.ClearDateOfPurchase {
		s.DateOfPurchase = nil
	}
	setString(&s.Purchaser, p.Purchaser)
	setString(&s.RegionFound, p.RegionFound)
	setString(&s.CountryFound, p.CountryFound)
	setString(&s.Location, p.Location)
	setString(&s.Description, p.Description)
	setString(&s.Notes, p.Notes)
	setString(&s.ImageURL, p.ImageURL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SpecimenFilter narrows Count. Zero value matches every specimen.
type SpecimenFilter struct {
	Category *string
}

// Matches reports whether s passes the filter.
func (f SpecimenFilter) Matches(s Specimen) bool {
	if f.Category != nil && s.Category != *f.Category {
		return false
	}
	return true
}

// ValueField names a numeric specimen field that can be summed.
type ValueField string

const (
	PaidValue   ValueField = "paidValue"
	ActiveValue ValueField = "activeValue"
)

// Of returns the value of field f on s.
func (f ValueField) Of(s Specimen) float64 {
	switch f {
	case PaidValue:
		return s.PaidValue
	case ActiveValue:
		return s.ActiveValue
	}
	return 0
}
