package mock

import (
	"context"

	"github.com/fwojciec/wardrobe"
)

var _ wardrobe.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wardrobe.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ wardrobe.Trimmer = (*Trimmer)(nil)

// Trimmer is a mock implementation of wardrobe.Trimmer.
type Trimmer struct {
	TrimFn func(html string) (string, error)
}

func (t *Trimmer) Trim(html string) (string, error) {
	return t.TrimFn(html)
}

var _ wardrobe.ImageLoader = (*ImageLoader)(nil)

// ImageLoader is a mock implementation of wardrobe.ImageLoader.
type ImageLoader struct {
	LoadFn func(ctx context.Context, source string) (*wardrobe.Image, error)
}

func (l *ImageLoader) Load(ctx context.Context, source string) (*wardrobe.Image, error) {
	return l.LoadFn(ctx, source)
}

var _ wardrobe.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of wardrobe.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
