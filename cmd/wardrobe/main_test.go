package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wardrobe"
	main "github.com/fwojciec/wardrobe/cmd/wardrobe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T, vars map[string]string) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.EnvFile = ""
	m.Getenv = env(vars)
	return m
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := newTestMain(t, nil).Run(context.Background(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: wardrobe")
			assert.Contains(t, stdout.String(), "Commands:")
			for _, cmd := range []string{"page", "html", "image", "ingest", "list", "show", "delete"} {
				assert.Contains(t, stdout.String(), cmd)
			}
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := newTestMain(t, nil).Run(context.Background(), []string{}, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: wardrobe")
}

func TestRun_ExtractionRequiresAPIKey(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"page", "https://shop.example.com/tee"},
		{"image", "tee.jpg"},
		{"ingest", "https://shop.example.com/tee"},
	} {
		stderr := &bytes.Buffer{}

		err := newTestMain(t, nil).Run(context.Background(), args, &bytes.Buffer{}, stderr)

		require.Error(t, err, "%v", args)
		assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
		assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
	}
}

func TestRun_ListWithEmptyDatabase(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := newTestMain(t, nil).Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No garments found")
}

func TestRun_DeleteMissingGarment(t *testing.T) {
	t.Parallel()

	err := newTestMain(t, nil).Run(context.Background(), []string{"delete", "nope"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, wardrobe.ENOTFOUND, wardrobe.ErrorCode(err))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	err := newTestMain(t, map[string]string{"WARDROBE_RPS": "fast"}).Run(context.Background(), []string{"list"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
}
