// Package goquery trims product page HTML down to its main content.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wardrobe"
)

// Ensure Trimmer implements wardrobe.Trimmer at compile time.
var _ wardrobe.Trimmer = (*Trimmer)(nil)

// noise lists elements that carry no product information.
const noise = "script:not([type='application/ld+json']), style, noscript, svg, iframe, template, link"

// Trimmer keeps the inner HTML of the first <main> element, or of <body>
// when the page has no usable <main>. Structured product data published as
// JSON-LD is kept even when it sits in <head>.
type Trimmer struct {
	// KeepNoise disables removal of scripts, styles and inline SVG.
	KeepNoise bool
}

// NewTrimmer creates a new Trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Trim returns the main content of the page.
func (t *Trimmer) Trim(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wardrobe.Errorf(wardrobe.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", wardrobe.WrapError(wardrobe.EINVALID, err, "parse HTML")
	}

	var jsonLD []string
	doc.Find("head script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		if out, err := goquery.OuterHtml(s); err == nil {
			jsonLD = append(jsonLD, out)
		}
	})

	if !t.KeepNoise {
		doc.Find(noise).Remove()
	}

	content := inner(doc.Find("main").First())
	if content == "" {
		content = inner(doc.Find("body"))
	}
	if content == "" && len(jsonLD) == 0 {
		return html, nil
	}

	return strings.Join(append(jsonLD, content), "\n"), nil
}

func inner(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	out, err := s.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
