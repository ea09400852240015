package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wardrobe"
)

// Ensure LoggingFetcher implements wardrobe.Fetcher.
var _ wardrobe.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   wardrobe.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wardrobe.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the page being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingImageLoader implements wardrobe.ImageLoader.
var _ wardrobe.ImageLoader = (*LoggingImageLoader)(nil)

// LoggingImageLoader wraps an ImageLoader with logging.
type LoggingImageLoader struct {
	next   wardrobe.ImageLoader
	logger *slog.Logger
}

// NewLoggingImageLoader creates a new LoggingImageLoader.
func NewLoggingImageLoader(next wardrobe.ImageLoader, logger *slog.Logger) *LoggingImageLoader {
	return &LoggingImageLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the detected MIME type.
func (l *LoggingImageLoader) Load(ctx context.Context, source string) (img *wardrobe.Image, err error) {
	defer func(begin time.Time) {
		var mimeType string
		var size int
		if img != nil {
			mimeType = img.MIMEType
			size = len(img.Data)
		}
		l.logger.Info("load image",
			"source", source,
			"mime", mimeType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, source)
}
