// Package extract orchestrates a single extraction: render the prompt, call
// the model, recover the JSON object and normalize it into a record.
package extract

import (
	"context"
	"log/slog"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/prompt"
	"github.com/fwojciec/wardrobe/reply"
)

var _ wardrobe.Extractor = (*Service)(nil)

// Kind classifies the outcome of one extraction pass.
type Kind int

// Outcome kinds.
const (
	KindRecord Kind = iota
	KindParseFailure
	KindSchemaMismatch
	KindInvocationFailure
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindParseFailure:
		return "parse_failure"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindInvocationFailure:
		return "invocation_failure"
	}
	return "unknown"
}

// Result is the outcome of one extraction pass. Record is set only for
// KindRecord; Err is set for every other kind. Raw holds the model reply
// whenever the model was reached.
type Result struct {
	Kind   Kind
	Record *wardrobe.Record
	Raw    string
	Err    error
}

// Service implements wardrobe.Extractor on top of a wardrobe.Model.
type Service struct {
	model     wardrobe.Model
	validator wardrobe.Validator
	strict    bool
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithValidator checks recovered objects against the variant schema.
// Violations are logged; with strict set they are treated as a schema mismatch.
func WithValidator(v wardrobe.Validator, strict bool) Option {
	return func(s *Service) {
		s.validator = v
		s.strict = strict
	}
}

// WithLogger sets the logger used to report failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an extraction service backed by model.
func NewService(model wardrobe.Model, opts ...Option) *Service {
	s := &Service{
		model:  model,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one extraction pass for the prompt and classifies the outcome.
// It never retries.
func (s *Service) Run(ctx context.Context, p *wardrobe.Prompt) Result {
	raw, err := s.model.Generate(ctx, p)
	if err != nil {
		if wardrobe.ErrorCode(err) != wardrobe.EMODEL {
			err = wardrobe.WrapError(wardrobe.EMODEL, err, "model invocation failed")
		}
		return Result{Kind: KindInvocationFailure, Err: err}
	}

	obj, err := reply.Parse(raw)
	if err != nil {
		return Result{Kind: KindParseFailure, Raw: raw, Err: err}
	}

	if s.validator != nil {
		if err := s.validator.Validate(p.Variant, obj); err != nil {
			if s.strict {
				return Result{Kind: KindSchemaMismatch, Raw: raw, Err: err}
			}
			s.logger.Warn("extract.schema.violation",
				"variant", p.Variant,
				"err", err,
			)
		}
	}

	rec, err := wardrobe.DecodeRecord(obj, p.Variant)
	if err != nil {
		return Result{Kind: KindSchemaMismatch, Raw: raw, Err: err}
	}
	return Result{Kind: KindRecord, Record: rec, Raw: raw}
}

// ExtractPage extracts a record from product page HTML. Any failure is
// logged and replaced by the fallback record.
func (s *Service) ExtractPage(ctx context.Context, html string) *wardrobe.Record {
	res := s.Run(ctx, prompt.Page(html))
	if res.Kind == KindRecord {
		return res.Record
	}

	s.logger.Error("extract.page.fallback",
		"kind", res.Kind.String(),
		"err", res.Err,
		"raw", res.Raw,
	)
	return wardrobe.NewFallbackRecord()
}

// ExtractImage extracts a record from a garment photo. It returns a nil
// record when the reply cannot be used and propagates model errors.
func (s *Service) ExtractImage(ctx context.Context, image []byte, mimeType string) (*wardrobe.Record, error) {
	res := s.Run(ctx, prompt.Image(image, mimeType))
	switch res.Kind {
	case KindRecord:
		return res.Record, nil
	case KindInvocationFailure:
		return nil, res.Err
	}

	s.logger.Error("extract.image.parse_failed",
		"kind", res.Kind.String(),
		"err", res.Err,
		"raw", res.Raw,
	)
	return nil, nil
}
