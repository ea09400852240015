// Package trafilatura trims product page HTML with go-trafilatura's
// boilerplate removal.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wardrobe"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Trimmer implements wardrobe.Trimmer at compile time.
var _ wardrobe.Trimmer = (*Trimmer)(nil)

// Trimmer removes navigation, footers and other boilerplate. Pages where
// no main content is found are returned unchanged.
type Trimmer struct{}

// NewTrimmer creates a new Trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Trim returns the main content of the page as HTML.
func (t *Trimmer) Trim(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", wardrobe.Errorf(wardrobe.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
	})
	if err != nil || result == nil || result.ContentNode == nil {
		return rawHTML, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", wardrobe.WrapError(wardrobe.EINTERNAL, err, "render trimmed HTML")
	}
	if title := result.Metadata.Title; title != "" {
		return "<h1>" + html.EscapeString(title) + "</h1>\n" + buf.String(), nil
	}
	return buf.String(), nil
}
