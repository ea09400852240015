package wardrobe

import "context"

// Fetcher retrieves the HTML of product pages.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Trimmer reduces page HTML to the part worth sending to a model.
// The extraction core embeds HTML verbatim, so large pages should be trimmed
// by the caller first.
type Trimmer interface {
	Trim(html string) (string, error)
}

// Image is a garment photograph loaded for extraction.
type Image struct {
	Source   string
	Data     []byte
	MIMEType string
}

// ImageLoader loads images by source name (a path or URL).
type ImageLoader interface {
	Load(ctx context.Context, source string) (*Image, error)
}

// DomainLimiter throttles requests per host so that a batch does not
// overrun a single store.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
