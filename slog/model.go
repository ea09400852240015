package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wardrobe"
)

// Ensure LoggingModel implements wardrobe.Model.
var _ wardrobe.Model = (*LoggingModel)(nil)

// LoggingModel wraps a Model with logging. Prompt and reply contents are
// not logged, only their sizes.
type LoggingModel struct {
	next   wardrobe.Model
	logger *slog.Logger
}

// NewLoggingModel creates a new LoggingModel.
func NewLoggingModel(next wardrobe.Model, logger *slog.Logger) *LoggingModel {
	return &LoggingModel{next: next, logger: logger}
}

// Generate delegates to the wrapped model and logs the call.
func (m *LoggingModel) Generate(ctx context.Context, prompt *wardrobe.Prompt) (text string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		m.logger.Log(ctx, level, "model generate",
			"variant", prompt.Variant,
			"bytes", prompt.Size(),
			"reply_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Generate(ctx, prompt)
}
