package wardrobe

import "context"

// TokenCounter counts tokens in text for a specific model.
// Batch ingestion uses it to skip pages too large to send to the model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
