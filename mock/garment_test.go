package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarmentService_CreateGarment(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateGarmentFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *wardrobe.Garment
		var calledPayload []byte
		s := &mock.GarmentService{
			CreateGarmentFn: func(_ context.Context, g *wardrobe.Garment, payload []byte) error {
				calledWith = g
				calledPayload = payload
				return nil
			},
		}

		g := &wardrobe.Garment{
			Variant: wardrobe.VariantImage,
			Source:  "tee.jpg",
			Record:  &wardrobe.Record{Variant: wardrobe.VariantImage, IsClothing: true},
		}

		err := s.CreateGarment(context.Background(), g, []byte("img"))

		require.NoError(t, err)
		assert.Equal(t, g, calledWith)
		assert.Equal(t, []byte("img"), calledPayload)
	})
}
