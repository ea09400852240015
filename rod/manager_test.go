//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/wardrobe/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Browser(t *testing.T) {
	t.Parallel()

	t.Run("launches a new browser once the page budget is spent", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		manager.PageDone()
		manager.PageDone()

		second := manager.Browser()

		require.NotNil(t, second)
		assert.NotSame(t, first, second)
		assert.Equal(t, 2, manager.Generation())
	})

	t.Run("keeps the browser within budget", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		manager.PageDone()

		assert.Same(t, first, manager.Browser())
		assert.Equal(t, 1, manager.Generation())
	})

	t.Run("budget restarts after replacement", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer manager.Close()

		manager.PageDone()
		replaced := manager.Browser()

		assert.Same(t, replaced, manager.Browser())
		assert.Equal(t, 2, manager.Generation())
	})
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NotZero(t, manager.LauncherPID())

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())
	assert.Zero(t, manager.LauncherPID())
}
