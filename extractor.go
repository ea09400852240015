package wardrobe

import "context"

// Extractor produces clothing records from product pages and garment photos.
//
// The two entry points have different failure contracts. ExtractPage never
// fails: any failure yields the fallback record. ExtractImage returns a nil
// record when the reply cannot be parsed and propagates EMODEL errors from
// the model call.
type Extractor interface {
	// ExtractPage extracts a record from the HTML of a product page.
	// The result is never nil.
	ExtractPage(ctx context.Context, html string) *Record

	// ExtractImage extracts a record from a photograph of a single garment.
	ExtractImage(ctx context.Context, image []byte, mimeType string) (*Record, error)
}

// Validator checks a recovered JSON object against the enumerations of a variant.
type Validator interface {
	// Validate returns ESCHEMA if obj does not conform to the variant's schema.
	Validate(v Variant, obj map[string]any) error
}
