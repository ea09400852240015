package mock

import (
	"context"

	"github.com/fwojciec/wardrobe"
)

var _ wardrobe.GarmentService = (*GarmentService)(nil)

// GarmentService is a mock implementation of wardrobe.GarmentService.
type GarmentService struct {
	CreateGarmentFn   func(ctx context.Context, g *wardrobe.Garment, payload []byte) error
	FindGarmentByIDFn func(ctx context.Context, id string) (*wardrobe.Garment, error)
	FindGarmentsFn    func(ctx context.Context, filter wardrobe.GarmentFilter) ([]*wardrobe.Garment, error)
	DeleteGarmentFn   func(ctx context.Context, id string) error
}

func (s *GarmentService) CreateGarment(ctx context.Context, g *wardrobe.Garment, payload []byte) error {
	return s.CreateGarmentFn(ctx, g, payload)
}

func (s *GarmentService) FindGarmentByID(ctx context.Context, id string) (*wardrobe.Garment, error) {
	return s.FindGarmentByIDFn(ctx, id)
}

func (s *GarmentService) FindGarments(ctx context.Context, filter wardrobe.GarmentFilter) ([]*wardrobe.Garment, error) {
	return s.FindGarmentsFn(ctx, filter)
}

func (s *GarmentService) DeleteGarment(ctx context.Context, id string) error {
	return s.DeleteGarmentFn(ctx, id)
}
