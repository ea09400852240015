package http

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/wardrobe"
)

// Ensure SitemapService implements wardrobe.SitemapService.
var _ wardrobe.SitemapService = (*SitemapService)(nil)

// SitemapService discovers product page URLs from a store's sitemaps.
//
// Stores commonly split their sitemap index by content type
// (sitemap_products_1.xml, product-sitemap.xml). When an index lists any
// product sitemaps, only those are followed.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the store's sitemaps, in
// sitemap order without duplicates. It returns an empty slice if the store
// publishes no sitemap.
//
// When baseURL has a path (e.g. https://shop.example.com/collections/men),
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *wardrobe.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "invalid store URL %q", baseURL)
	}
	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &walker{svc: s, visited: make(map[string]bool), seen: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(w.urls))
	for _, u := range w.urls {
		if prefix != "" && !underPath(u, prefix) {
			continue
		}
		if !filter.Match(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// locateSitemaps reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	if sitemaps := s.robotsSitemaps(ctx, root.JoinPath("robots.txt").String()); len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.JoinPath("sitemap.xml").String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps returns the sitemap URLs declared in robots.txt. A missing
// or unreadable robots.txt yields none.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	resp, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		name, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	return sitemaps
}

func (s *SitemapService) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EINVALID, err, "invalid sitemap URL %q", target)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, wardrobe.Errorf(statusCode(resp.StatusCode), "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp, nil
}

// walker collects page URLs across a tree of sitemaps.
type walker struct {
	svc     *SitemapService
	visited map[string]bool
	seen    map[string]bool
	urls    []string
}

func (w *walker) walk(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	resp, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return wardrobe.WrapError(wardrobe.EINVALID, err, "parse sitemap %s", sitemapURL)
	}
	root := doc.Root()
	if root == nil {
		return wardrobe.Errorf(wardrobe.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range productSitemaps(locs(root, "sitemap")) {
			if err := w.walk(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		if !w.seen[u] {
			w.seen[u] = true
			w.urls = append(w.urls, u)
		}
	}
	return nil
}

// locs returns the <loc> text of each child element with the given tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// productSitemaps narrows an index to its product sitemaps, if it has any.
func productSitemaps(sitemaps []string) []string {
	var products []string
	for _, sm := range sitemaps {
		if strings.Contains(strings.ToLower(sm), "product") {
			products = append(products, sm)
		}
	}
	if len(products) == 0 {
		return sitemaps
	}
	return products
}

// underPath reports whether rawURL lies under the path prefix, respecting
// segment boundaries: /men matches /men and /men/tee but not /mens.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}
