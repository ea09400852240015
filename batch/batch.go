// Package batch runs many extractions with bounded concurrency. The
// extraction core imposes no limits of its own, so a large ingest goes
// through a Runner.
package batch

import (
	"context"
	"net/url"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/retry"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of extractions in flight when the
// Runner does not set one.
const DefaultConcurrency = 4

// Runner extracts records from product pages or garment photos.
type Runner struct {
	Fetcher     wardrobe.Fetcher
	Trimmer     wardrobe.Trimmer
	Extractor   wardrobe.Extractor
	Images      wardrobe.ImageLoader
	RateLimiter wardrobe.DomainLimiter

	// Garments, when set, receives every extracted record as it completes.
	Garments wardrobe.GarmentService

	// Tokens and MaxTokens skip pages that would not fit the model's
	// context window. Either may be left unset.
	Tokens    wardrobe.TokenCounter
	MaxTokens int

	Concurrency int

	// FetchPolicy controls fetch retries. A nil Delays slice uses
	// retry.DefaultDelays.
	FetchPolicy retry.Policy
}

// Item is the outcome for one input. Exactly one of Record and Err is set.
type Item struct {
	Position int
	Source   string
	Record   *wardrobe.Record
	Err      error

	// GarmentID is set when the record was saved to Garments.
	GarmentID string
}

// result carries the extraction input alongside the item so that it can be
// hashed when the record is saved.
type result struct {
	Item
	payload []byte
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// ExtractPages fetches, trims and extracts every URL. Items are returned in
// input order. When a page is identified as clothing, its sourceUrl is set
// to the requested URL.
func (r *Runner) ExtractPages(ctx context.Context, urls []string, progress ProgressFunc) []Item {
	return r.run(ctx, urls, progress, r.extractPage)
}

// ExtractImages loads and extracts every image source. A reply that could
// not be used is reported as an EPARSE item error.
func (r *Runner) ExtractImages(ctx context.Context, sources []string, progress ProgressFunc) []Item {
	return r.run(ctx, sources, progress, r.extractImage)
}

type extractFunc func(ctx context.Context, source string) (*wardrobe.Record, []byte, error)

func (r *Runner) run(ctx context.Context, sources []string, progress ProgressFunc, fn extractFunc) []Item {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan result, total)

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			g.Go(func() error {
				rec, payload, err := fn(ctx, source)
				resultCh <- result{
					Item:    Item{Position: i, Source: source, Record: rec, Err: err},
					payload: payload,
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	items := make([]Item, total)
	completed := 0
	for res := range resultCh {
		item := res.Item
		if item.Err == nil && r.Garments != nil {
			item.GarmentID, item.Err = r.save(ctx, item, res.payload)
			if item.Err != nil {
				item.Record = nil
			}
		}

		completed++
		items[item.Position] = item

		e := ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Source: item.Source}
		if item.Err != nil {
			e.Type = ProgressFailed
			e.Error = item.Err
		}
		notify(e)
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return items
}

func (r *Runner) save(ctx context.Context, item Item, payload []byte) (string, error) {
	g := &wardrobe.Garment{
		Variant: item.Record.Variant,
		Source:  item.Source,
		Record:  item.Record,
	}
	if err := r.Garments.CreateGarment(ctx, g, payload); err != nil {
		return "", err
	}
	return g.ID, nil
}

func (r *Runner) extractPage(ctx context.Context, pageURL string) (*wardrobe.Record, []byte, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil, nil, wardrobe.Errorf(wardrobe.EINVALID, "invalid page URL %q", pageURL)
	}

	var html string
	err = retry.Do(ctx, r.fetchPolicy(), func(ctx context.Context) error {
		if r.RateLimiter != nil {
			if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}
		var err error
		html, err = r.Fetcher.Fetch(ctx, pageURL)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if r.Trimmer != nil {
		if html, err = r.Trimmer.Trim(html); err != nil {
			return nil, nil, err
		}
	}

	if r.Tokens != nil && r.MaxTokens > 0 {
		n, err := r.Tokens.CountTokens(ctx, html)
		if err != nil {
			return nil, nil, err
		}
		if n > r.MaxTokens {
			return nil, nil, wardrobe.Errorf(wardrobe.EINVALID, "page has %d tokens, limit is %d", n, r.MaxTokens)
		}
	}

	rec := r.Extractor.ExtractPage(ctx, html)
	if rec.IsClothing {
		rec = rec.WithSourceURL(pageURL)
	}
	return rec, []byte(html), nil
}

func (r *Runner) extractImage(ctx context.Context, source string) (*wardrobe.Record, []byte, error) {
	img, err := r.Images.Load(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	rec, err := r.Extractor.ExtractImage(ctx, img.Data, img.MIMEType)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, wardrobe.Errorf(wardrobe.EPARSE, "no usable record for %s", source)
	}
	return rec, img.Data, nil
}

func (r *Runner) fetchPolicy() retry.Policy {
	p := r.FetchPolicy
	if p.Delays == nil {
		d := retry.DefaultPolicy()
		p.Delays, p.Jitter = d.Delays, d.Jitter
	}
	if p.Retryable == nil {
		p.Retryable = isTransient
	}
	return p
}

// isTransient reports whether a fetch error may succeed on another attempt.
func isTransient(err error) bool {
	switch wardrobe.ErrorCode(err) {
	case wardrobe.ENOTFOUND, wardrobe.EINVALID:
		return false
	}
	return true
}
