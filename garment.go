package wardrobe

import (
	"context"
	"time"
)

// Garment is an extracted record saved by an ingestion run.
type Garment struct {
	ID         string    `json:"id"`
	Variant    Variant   `json:"variant"`
	Source     string    `json:"source"`
	SourceHash string    `json:"sourceHash"`
	Record     *Record   `json:"record"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate returns an error if the garment contains invalid fields.
func (g *Garment) Validate() error {
	if err := g.Variant.Validate(); err != nil {
		return err
	}
	if g.Source == "" {
		return Errorf(EINVALID, "garment source required")
	}
	if g.Record == nil {
		return Errorf(EINVALID, "garment record required")
	}
	return nil
}

// GarmentService represents a service for managing saved garments.
type GarmentService interface {
	// CreateGarment saves a new garment. ID, SourceHash and CreatedAt are set
	// by the service; payload is the extraction input the hash is computed from.
	CreateGarment(ctx context.Context, g *Garment, payload []byte) error

	// FindGarmentByID retrieves a garment by ID.
	// Returns ENOTFOUND if the garment does not exist.
	FindGarmentByID(ctx context.Context, id string) (*Garment, error)

	// FindGarments retrieves garments matching the filter, newest first.
	FindGarments(ctx context.Context, filter GarmentFilter) ([]*Garment, error)

	// DeleteGarment permanently removes a garment.
	// Returns ENOTFOUND if the garment does not exist.
	DeleteGarment(ctx context.Context, id string) error
}

// GarmentFilter represents a filter for FindGarments.
type GarmentFilter struct {
	ID         *string  `json:"id"`
	Variant    *Variant `json:"variant"`
	Source     *string  `json:"source"`
	IsClothing *bool    `json:"isClothing"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
