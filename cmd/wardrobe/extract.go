package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/wardrobe"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}
	return extractPage(deps, c.URL, c.URL, html, c.Save)
}

// Run executes the html command.
func (c *HTMLCmd) Run(deps *Dependencies) error {
	var data []byte
	var err error
	if c.File == "-" {
		data, err = io.ReadAll(deps.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return wardrobe.WrapError(wardrobe.EINVALID, err, "read %s", c.File)
	}

	source := c.URL
	if source == "" {
		source = c.File
	}
	return extractPage(deps, source, c.URL, string(data), c.Save)
}

// extractPage trims and extracts html. Clothing records get pageURL as
// their sourceUrl when it is known.
func extractPage(deps *Dependencies, source, pageURL, html string, save bool) error {
	if deps.Trimmer != nil {
		trimmed, err := deps.Trimmer.Trim(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
			return err
		}
		html = trimmed
	}

	rec := deps.Extractor.ExtractPage(deps.Ctx, html)
	if rec.IsClothing && pageURL != "" {
		rec = rec.WithSourceURL(pageURL)
	}

	if save {
		if err := saveGarment(deps, source, rec, []byte(html)); err != nil {
			return err
		}
	}
	return writeJSON(deps.Stdout, rec)
}

// Run executes the image command.
func (c *ImageCmd) Run(deps *Dependencies) error {
	img, err := deps.Images.Load(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}

	rec, err := deps.Extractor.ExtractImage(deps.Ctx, img.Data, img.MIMEType)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}
	if rec == nil {
		fmt.Fprintln(deps.Stderr, "warning: the model reply could not be read as a record")
		return writeJSON(deps.Stdout, nil)
	}

	if c.Save {
		if err := saveGarment(deps, c.File, rec, img.Data); err != nil {
			return err
		}
	}
	return writeJSON(deps.Stdout, rec)
}

func saveGarment(deps *Dependencies, source string, rec *wardrobe.Record, payload []byte) error {
	g := &wardrobe.Garment{
		Variant: rec.Variant,
		Source:  source,
		Record:  rec,
	}
	if err := deps.Garments.CreateGarment(deps.Ctx, g, payload); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Saved garment %s\n", g.ID)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
