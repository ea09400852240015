package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the PNG file signature followed by the start of an IHDR chunk.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestImageLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("uses the extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "tee.jpg", []byte{0xff, 0xd8, 0xff, 0xe0})

		img, err := fs.NewImageLoader().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, path, img.Source)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0xe0}, img.Data)
	})

	t.Run("sniffs content without an image extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "upload", pngHeader)

		img, err := fs.NewImageLoader().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
	})

	t.Run("knows formats Go does not sniff", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "IMG_0001.HEIC", []byte("....ftypheic"))

		img, err := fs.NewImageLoader().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "image/heic", img.MIMEType)
	})

	t.Run("rejects non-images", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "notes.txt", []byte("just some notes"))

		_, err := fs.NewImageLoader().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewImageLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))

		require.Error(t, err)
		assert.Equal(t, wardrobe.ENOTFOUND, wardrobe.ErrorCode(err))
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewImageLoader().Load(context.Background(), t.TempDir())

		require.Error(t, err)
		assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
	})
}

func TestDetectMIMEType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", fs.DetectMIMEType("photo.PNG", nil))
	assert.Equal(t, "image/webp", fs.DetectMIMEType("photo.webp", nil))
	assert.Equal(t, "image/png", fs.DetectMIMEType("photo", pngHeader))
	assert.Equal(t, "text/plain", fs.DetectMIMEType("notes", []byte("hello")))
}
