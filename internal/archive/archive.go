// Package archive reads zip archives and exposes their members as safe,
// placeable entries.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Archive-level errors, matchable with errors.Is.
var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input file does not exist")

	// ErrNotZipArchive is returned when the input cannot be parsed as a
	// zip archive.
	ErrNotZipArchive = errors.New("input is not a zip archive")
)

// Reader wraps an opened zip archive.
type Reader struct {
	zr *zip.ReadCloser
}

// Open opens the zip archive at path.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	zr, err := zip.OpenReader(path)
	switch {
	case err == nil:
	case errors.Is(err, zip.ErrInsecurePath):
		// The reader is still valid; entries with unsafe names are
		// skipped one by one during iteration instead.
	case errors.Is(err, zip.ErrFormat):
		return nil, fmt.Errorf("%w: %s", ErrNotZipArchive, path)
	default:
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Reader{zr: zr}, nil
}

// Close releases the archive handle.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// Entries returns the archive members in storage order.
func (r *Reader) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		entries = append(entries, &Entry{f: f})
	}
	return entries
}

// Entry is a read-only view over one archive member.
type Entry struct {
	f *zip.File
}

// Name returns the member's stored name, slash-separated, with a trailing
// slash for directories.
func (e *Entry) Name() string { return e.f.Name }

// IsDir reports whether the stored name denotes a directory.
func (e *Entry) IsDir() bool { return strings.HasSuffix(e.f.Name, "/") }

// SafePath returns the entry's sanitized relative path, suitable for joining
// under an output directory. It reports false for names that are absolute or
// escape upward; such entries must be skipped, not placed.
func (e *Entry) SafePath() (string, bool) {
	name := strings.TrimSuffix(e.f.Name, "/")
	p := filepath.FromSlash(name)
	if p == "" || !filepath.IsLocal(p) {
		return "", false
	}
	return p, true
}

// Open returns the entry's raw byte stream.
func (e *Entry) Open() (io.ReadCloser, error) {
	return e.f.Open()
}
