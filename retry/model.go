package retry

import (
	"context"

	"github.com/fwojciec/wardrobe"
	"golang.org/x/time/rate"
)

var _ wardrobe.Model = (*Model)(nil)

// Model retries failed calls to the wrapped model according to a Policy.
type Model struct {
	model  wardrobe.Model
	policy Policy
}

// NewModel wraps model with retries.
func NewModel(model wardrobe.Model, policy Policy) *Model {
	return &Model{model: model, policy: policy}
}

// Generate calls the wrapped model, retrying on failure.
func (m *Model) Generate(ctx context.Context, prompt *wardrobe.Prompt) (string, error) {
	var text string
	err := Do(ctx, m.policy, func(ctx context.Context) error {
		var err error
		text, err = m.model.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		if wardrobe.ErrorCode(err) != wardrobe.EMODEL {
			return "", wardrobe.WrapError(wardrobe.EMODEL, err, "model invocation failed")
		}
		return "", err
	}
	return text, nil
}

var _ wardrobe.Model = (*LimitedModel)(nil)

// LimitedModel holds calls to the wrapped model to a request rate using a
// token bucket.
type LimitedModel struct {
	model   wardrobe.Model
	limiter *rate.Limiter
}

// NewLimitedModel wraps model with a limit of rps requests per second.
// A non-positive rps disables the limit.
func NewLimitedModel(model wardrobe.Model, rps float64) *LimitedModel {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &LimitedModel{model: model, limiter: rate.NewLimiter(limit, 1)}
}

// Generate waits for the rate limit, then calls the wrapped model.
func (m *LimitedModel) Generate(ctx context.Context, prompt *wardrobe.Prompt) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", wardrobe.WrapError(wardrobe.EMODEL, err, "wait for model rate limit")
	}
	return m.model.Generate(ctx, prompt)
}
