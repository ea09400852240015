package mock

import (
	"context"

	"github.com/fwojciec/wardrobe"
)

var _ wardrobe.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wardrobe.Extractor.
type Extractor struct {
	ExtractPageFn  func(ctx context.Context, html string) *wardrobe.Record
	ExtractImageFn func(ctx context.Context, image []byte, mimeType string) (*wardrobe.Record, error)
}

func (e *Extractor) ExtractPage(ctx context.Context, html string) *wardrobe.Record {
	return e.ExtractPageFn(ctx, html)
}

func (e *Extractor) ExtractImage(ctx context.Context, image []byte, mimeType string) (*wardrobe.Record, error) {
	return e.ExtractImageFn(ctx, image, mimeType)
}

var _ wardrobe.Validator = (*Validator)(nil)

// Validator is a mock implementation of wardrobe.Validator.
type Validator struct {
	ValidateFn func(v wardrobe.Variant, obj map[string]any) error
}

func (v *Validator) Validate(variant wardrobe.Variant, obj map[string]any) error {
	return v.ValidateFn(variant, obj)
}
