package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ wardrobe.TokenCounter = tc

	t.Run("counts tokens in page HTML", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), `<main><h1>Cool Tee</h1><p>$19.99</p></main>`)

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("larger pages count more tokens", func(t *testing.T) {
		t.Parallel()

		small, err := tc.CountTokens(context.Background(), "<main>Tee</main>")
		require.NoError(t, err)

		large, err := tc.CountTokens(context.Background(), `<main><h1>Relaxed Linen Shirt</h1><p>Breathable linen in a relaxed fit, made for warm evenings and weekend travel.</p><span class="price">$59.00</span></main>`)
		require.NoError(t, err)

		assert.Greater(t, large, small)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-gemini-model")

	require.Error(t, err)
	assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
}
