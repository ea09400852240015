package gemini

import (
	"context"

	"github.com/fwojciec/wardrobe"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ wardrobe.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer,
// without a round-trip to the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for the given model.
// An empty model name selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EINVALID, err, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, wardrobe.WrapError(wardrobe.EINTERNAL, err, "count tokens")
	}
	return int(result.TotalTokens), nil
}
