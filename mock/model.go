package mock

import (
	"context"

	"github.com/fwojciec/wardrobe"
)

var _ wardrobe.Model = (*Model)(nil)

// Model is a mock implementation of wardrobe.Model.
type Model struct {
	GenerateFn func(ctx context.Context, prompt *wardrobe.Prompt) (string, error)
}

func (m *Model) Generate(ctx context.Context, prompt *wardrobe.Prompt) (string, error) {
	return m.GenerateFn(ctx, prompt)
}
