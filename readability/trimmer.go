// Package readability trims product page HTML with go-readability.
package readability

import (
	"html"
	"strings"

	"github.com/fwojciec/wardrobe"
	"github.com/go-shiori/go-readability"
)

// Ensure Trimmer implements wardrobe.Trimmer at compile time.
var _ wardrobe.Trimmer = (*Trimmer)(nil)

// Trimmer keeps the article-like body of a page. Product pages with little
// running text may not qualify as readable; those are returned unchanged.
type Trimmer struct{}

// NewTrimmer creates a new Trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Trim returns the readable content of the page as HTML.
func (t *Trimmer) Trim(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", wardrobe.Errorf(wardrobe.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return rawHTML, nil
	}

	if article.Title != "" && !strings.Contains(article.Content, article.Title) {
		return "<h1>" + html.EscapeString(article.Title) + "</h1>\n" + article.Content, nil
	}
	return article.Content, nil
}
