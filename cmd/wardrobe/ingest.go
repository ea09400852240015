package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/batch"
	"github.com/fwojciec/wardrobe/fs"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	sources, err := c.sources(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}

	if c.Preview {
		for _, s := range sources {
			fmt.Fprintln(deps.Stdout, s)
		}
		return nil
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d sources\n", event.Total)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Source)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Source, event.Error)
		}
	}

	var items []batch.Item
	if c.Images {
		items = deps.Runner.ExtractImages(deps.Ctx, sources, progress)
	} else {
		items = deps.Runner.ExtractPages(deps.Ctx, sources, progress)
	}

	var store *fs.RecordStore
	if c.Out != "" {
		store = fs.NewRecordStore(filepath.Dir(c.Out), filepath.Base(c.Out))
	}

	var saved, clothing, failed int
	for _, item := range items {
		if item.Err != nil {
			failed++
			continue
		}
		saved++
		if item.Record.IsClothing {
			clothing++
		}
		if store != nil {
			if err := store.Save(deps.Ctx, item.Source, item.Record); err != nil {
				_ = store.Abort()
				fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
				return err
			}
		}
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records (%d clothing, %d failed)\n", saved, clothing, failed)
	if saved == 0 && failed > 0 {
		return wardrobe.Errorf(wardrobe.EINTERNAL, "all %d extractions failed", failed)
	}
	return nil
}

// sources returns the explicit sources followed by any discovered from the sitemap.
func (c *IngestCmd) sources(deps *Dependencies) ([]string, error) {
	filter, err := wardrobe.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, s := range c.Sources {
		if c.Images || filter.Match(s) {
			sources = append(sources, s)
		}
	}

	if c.Sitemap != "" {
		if c.Images {
			return nil, wardrobe.Errorf(wardrobe.EINVALID, "--sitemap cannot be combined with --images")
		}
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, err
		}
		sources = append(sources, urls...)
	}

	if len(sources) == 0 {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "no sources to ingest; pass URLs, image files or --sitemap")
	}
	return sources, nil
}
