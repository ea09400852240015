package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wardrobe"
)

// RecordStore writes extracted records as JSON files with all-or-nothing
// semantics. Records are saved to a temporary directory, then moved into
// place on Commit.
type RecordStore struct {
	baseDir string
	name    string
}

// NewRecordStore creates a new RecordStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewRecordStore(baseDir, name string) *RecordStore {
	return &RecordStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *RecordStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *RecordStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes rec to the file derived from source; see SourcePath.
func (s *RecordStore) Save(ctx context.Context, source string, rec *wardrobe.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := SourcePath(source)
	if err != nil {
		return err
	}
	tempDir := s.tempDir()
	fullPath := filepath.Join(tempDir, relPath)
	if !strings.HasPrefix(fullPath, tempDir+string(filepath.Separator)) {
		return wardrobe.Errorf(wardrobe.EINVALID, "path traversal in source %q", source)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// Commit replaces the output directory with the saved records.
func (s *RecordStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved records.
func (s *RecordStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// SourcePath converts an extraction source to a relative file path.
// Page URLs map to host/path.json (https://shop.example.com/products/tee →
// shop.example.com/products/tee.json); image paths map to their base name.
func SourcePath(source string) (string, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		if hasDotDot(u.Path) {
			return "", wardrobe.Errorf(wardrobe.EINVALID, "path traversal in source %q", source)
		}
		path := strings.Trim(u.Path, "/")
		if path == "" {
			path = "index"
		}
		return filepath.Join(u.Host, filepath.FromSlash(path)) + ".json", nil
	}

	base := filepath.Base(source)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", wardrobe.Errorf(wardrobe.EINVALID, "invalid source %q", source)
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json", nil
}

func hasDotDot(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
