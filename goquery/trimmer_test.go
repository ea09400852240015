package goquery_test

import (
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimmer_Trim(t *testing.T) {
	t.Parallel()

	t.Run("keeps the first main element", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Cool Tee</title></head>
<body>
<nav><a href="/">Home</a></nav>
<main><h1>Cool Tee</h1><span class="price">$19.99</span></main>
<main><p>Related products</p></main>
<footer>Shipping and returns</footer>
</body>
</html>`

		got, err := goquery.NewTrimmer().Trim(html)

		require.NoError(t, err)
		assert.Equal(t, `<h1>Cool Tee</h1><span class="price">$19.99</span>`, got)
	})

	t.Run("falls back to the body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="product"><h1>Denim Jacket</h1></div></body></html>`

		got, err := goquery.NewTrimmer().Trim(html)

		require.NoError(t, err)
		assert.Equal(t, `<div class="product"><h1>Denim Jacket</h1></div>`, got)
	})

	t.Run("falls back to the body when main is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>  </main><h1>Hoodie</h1></body></html>`

		got, err := goquery.NewTrimmer().Trim(html)

		require.NoError(t, err)
		assert.Contains(t, got, "<h1>Hoodie</h1>")
	})

	t.Run("removes scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><style>.x{}</style><script>track()</script><h1>Tee</h1><svg><path/></svg></main></body></html>`

		got, err := goquery.NewTrimmer().Trim(html)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Tee</h1>", got)
	})

	t.Run("keeps noise when asked", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><script>track()</script><h1>Tee</h1></main></body></html>`

		got, err := (&goquery.Trimmer{KeepNoise: true}).Trim(html)

		require.NoError(t, err)
		assert.Contains(t, got, "track()")
	})

	t.Run("keeps JSON-LD product data from head", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">{"@type":"Product","name":"Cool Tee"}</script></head>
<body><main><h1>Cool Tee</h1></main></body></html>`

		got, err := goquery.NewTrimmer().Trim(html)

		require.NoError(t, err)
		assert.Contains(t, got, `{"@type":"Product","name":"Cool Tee"}`)
		assert.Contains(t, got, "<h1>Cool Tee</h1>")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewTrimmer().Trim("  ")

		require.Error(t, err)
		assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
	})
}
