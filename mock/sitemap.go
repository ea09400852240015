package mock

import (
	"context"

	"github.com/fwojciec/wardrobe"
)

var _ wardrobe.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of wardrobe.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *wardrobe.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *wardrobe.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
