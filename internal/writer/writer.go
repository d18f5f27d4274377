// Package writer owns the two output surfaces: the single concatenated text
// file for rendered HTML and the output directory tree for everything else.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TextWriter appends rendered text blocks to the single output text file,
// in the order entries appear in the archive.
type TextWriter struct {
	f         *os.File
	path      string
	artifacts bool
}

// NewTextWriter opens the output text file, truncating any previous content.
// With artifacts enabled, each block is wrapped in marker lines naming the
// source entry.
func NewTextWriter(path string, artifacts bool) (*TextWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &TextWriter{f: f, path: path, artifacts: artifacts}, nil
}

// WriteBlock appends one entry's rendered text. Blank lines produced by the
// renderer are dropped; the remaining lines are joined with newlines and
// newline-terminated so marker lines stay whole lines.
func (w *TextWriter) WriteBlock(name, text string) error {
	var sb strings.Builder
	if w.artifacts {
		sb.WriteString("# begin " + name + "\n")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteByte('\n')
	}

	if w.artifacts {
		sb.WriteString("# end " + name + "\n")
	}

	if _, err := w.f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("writing %s: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the output text file. It is safe to call twice.
func (w *TextWriter) Close() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.path, err)
	}
	return nil
}

// Copy writes an entry's raw bytes under outputDir at relPath, creating any
// missing parent directories. An existing file at that path is overwritten.
func Copy(outputDir, relPath string, r io.Reader) error {
	dst := filepath.Join(outputDir, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// EnsureDir recreates a directory entry's path under outputDir.
func EnsureDir(outputDir, relPath string) error {
	dst := filepath.Join(outputDir, relPath)
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}
	return nil
}
