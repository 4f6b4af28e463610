// Package imagestore persists uploaded listing photos on local disk and
// hands back durable public paths. It is the only code that touches the
// upload tree; handlers pass it streams and store what it returns.
package imagestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("imagestore: empty file")
	// ErrTooLarge is returned when a stream exceeds the configured cap.
	ErrTooLarge = errors.New("imagestore: file exceeds size limit")
)

// Store writes files under BaseDir and exposes them below the public/ URL
// prefix. MaxBytes bounds a single file; zero means no bound.
type Store struct {
	BaseDir  string
	MaxBytes int64
}

func New(baseDir string, maxBytes int64) *Store {
	return &Store{BaseDir: baseDir, MaxBytes: maxBytes}
}

// Stored describes a persisted file.
type Stored struct {
	StorePath string // path relative to BaseDir
	URL       string // public relative path (public/<StorePath>)
}

// Save streams r to <BaseDir>/<folder>/<filename>, deduplicating the name if
// it is already taken. Empty and oversized streams are rejected, and a
// rejected file never remains on disk.
func (s *Store) Save(folder, filename string, r io.Reader) (Stored, error) {
	filename = sanitizeName(filename)
	if filename == "" {
		return Stored{}, ErrEmptyFile
	}
	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Stored{}, err
	}
	relPath := filepath.ToSlash(filepath.Join(folder, uniqueName(dir, filename)))
	fullPath := filepath.Join(s.BaseDir, relPath)

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return Stored{}, err
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = 1 << 62
	}
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmptyFile
	}
	if err == nil && n > limit {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(fullPath)
		return Stored{}, err
	}
	return Stored{StorePath: relPath, URL: "public/" + relPath}, nil
}

// Remove deletes a stored file and its thumbnail, if any. Missing files are
// not an error; callers use this for best-effort cleanup.
func (s *Store) Remove(storePath string) {
	full := filepath.Join(s.BaseDir, filepath.FromSlash(storePath))
	_ = os.Remove(full)
	_ = os.Remove(ThumbPath(full))
}

// sanitizeName strips any path components from an uploaded filename.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// uniqueName appends a numeric suffix until the name is free in dir. A Stat
// error other than not-exist would recur for every candidate, so the probe
// stops there and lets the exclusive create in Save surface the real error.
func uniqueName(dir, name string) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		_, err := os.Stat(filepath.Join(dir, candidate))
		if err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}
