package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Scratch is a temporary extraction directory. It replaces the fixed
// process-wide scratch path of earlier versions: each run gets its own
// directory and removes it on every exit path, not just on success.
type Scratch struct {
	dir string
}

// NewScratch creates a fresh temporary directory under the system temp
// location.
func NewScratch() (*Scratch, error) {
	dir, err := os.MkdirTemp("", "ziptext-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string { return s.dir }

// PathFor returns where an entry's extracted copy lives under the scratch
// directory. It reports false for entries with no safe path.
func (s *Scratch) PathFor(e *Entry) (string, bool) {
	rel, ok := e.SafePath()
	if !ok {
		return "", false
	}
	return filepath.Join(s.dir, rel), true
}

// Remove deletes the scratch directory and everything under it.
func (s *Scratch) Remove() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing scratch directory %s: %w", s.dir, err)
	}
	return nil
}

// ExtractAll materializes every safe entry under the scratch directory.
// Entries whose names cannot be sanitized are skipped silently, matching the
// placement rules used everywhere else.
func (r *Reader) ExtractAll(s *Scratch) error {
	for _, e := range r.Entries() {
		dst, ok := s.PathFor(e)
		if !ok {
			continue
		}

		if e.IsDir() {
			if err := os.MkdirAll(dst, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dst, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", dst, err)
		}
		if err := extractFile(e, dst); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(e *Entry, dst string) error {
	rc, err := e.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", e.Name(), err)
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", e.Name(), err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
