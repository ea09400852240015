// Package fs loads garment photos from and writes extracted records to the
// local filesystem.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wardrobe"
)

// MaxImageBytes is the largest image the model accepts inline.
const MaxImageBytes = 20 << 20

// imageTypes covers formats the model accepts that Go does not sniff.
var imageTypes = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".webp": "image/webp",
	".avif": "image/avif",
}

// Ensure ImageLoader implements wardrobe.ImageLoader at compile time.
var _ wardrobe.ImageLoader = (*ImageLoader)(nil)

// ImageLoader reads garment photos from disk.
type ImageLoader struct{}

// NewImageLoader creates a new ImageLoader.
func NewImageLoader() *ImageLoader {
	return &ImageLoader{}
}

// Load reads the image at path. The MIME type is taken from the file
// extension when it names an image type, otherwise it is sniffed from the
// content. Files that are not images are rejected with EINVALID.
func (l *ImageLoader) Load(ctx context.Context, path string) (*wardrobe.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, wardrobe.Errorf(wardrobe.ENOTFOUND, "image %q not found", path)
	} else if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "%q is a directory", path)
	}
	if info.Size() > MaxImageBytes {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "image %q is larger than %d bytes", path, MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := DetectMIMEType(path, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "%q is not an image (%s)", path, mimeType)
	}

	return &wardrobe.Image{Source: path, Data: data, MIMEType: mimeType}, nil
}

// DetectMIMEType returns the media type of an image file, without parameters.
func DetectMIMEType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := imageTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return stripParams(t)
	}
	return stripParams(http.DetectContentType(data))
}

func stripParams(mediaType string) string {
	t, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(t)
}
