// Package http fetches product pages and store sitemaps over plain HTTP.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/wardrobe"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is a desktop Chrome user agent. Many stores serve bots a
// stripped or blocked page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// MaxPageBytes caps how much of a response body is read.
const MaxPageBytes = 10 << 20

// Ensure Fetcher implements wardrobe.Fetcher at compile time.
var _ wardrobe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves product page HTML with browser-like request headers.
// It does not execute JavaScript; use rod.Fetcher for stores that render
// product details client-side.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url and returns its HTML decoded to UTF-8.
// A non-200 response is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", wardrobe.WrapError(wardrobe.EINVALID, err, "invalid page URL %q", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", wardrobe.Errorf(statusCode(resp.StatusCode), "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, MaxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", wardrobe.WrapError(wardrobe.EINVALID, err, "unsupported page encoding")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func statusCode(status int) string {
	switch status {
	case http.StatusNotFound, http.StatusGone:
		return wardrobe.ENOTFOUND
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return wardrobe.EINVALID
	}
	return wardrobe.EINTERNAL
}
