// Package classify decides what kind of content each archive entry holds.
//
// Two strategies exist: by file extension (cheap, needs no extraction) and by
// content sniffing with the file(1) utility (needs the archive extracted to
// disk first). Both treat directory entries as directories before any content
// test runs.
package classify

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ziptext/ziptext/internal/archive"
)

// Kind is the classification result for one archive entry.
type Kind int

const (
	// Other is any entry that is neither a directory nor an HTML document.
	Other Kind = iota
	// Directory is an entry whose stored name ends in a path separator.
	Directory
	// HTML is an entry recognized as an HTML document.
	HTML
)

// String returns the kind's name for logging.
func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case HTML:
		return "html"
	default:
		return "other"
	}
}

// Classifier decides what an archive entry is. Implementations never fail:
// anything ambiguous classifies as Other.
type Classifier interface {
	Classify(e *archive.Entry) Kind
}

// ExtensionClassifier classifies by the sanitized path's extension. Only the
// exact lowercase ".html" counts; ".htm" and uppercase variants do not.
type ExtensionClassifier struct{}

// Classify implements Classifier.
func (ExtensionClassifier) Classify(e *archive.Entry) Kind {
	if e.IsDir() {
		return Directory
	}
	p, ok := e.SafePath()
	if !ok {
		return Other
	}
	if filepath.Ext(p) == ".html" {
		return HTML
	}
	return Other
}

// sniffMarker is the substring file(1) prints for HTML documents.
const sniffMarker = "html document"

// SniffClassifier asks the file(1) utility about the extracted copy of each
// entry. A spawn failure or unrecognizable output classifies the entry as
// Other rather than failing the run.
type SniffClassifier struct {
	scratch *archive.Scratch
	logger  *slog.Logger
}

// NewSniffClassifier creates a classifier over entries extracted into the
// given scratch directory.
func NewSniffClassifier(scratch *archive.Scratch, logger *slog.Logger) *SniffClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SniffClassifier{scratch: scratch, logger: logger}
}

// Classify implements Classifier.
func (c *SniffClassifier) Classify(e *archive.Entry) Kind {
	if e.IsDir() {
		return Directory
	}
	path, ok := c.scratch.PathFor(e)
	if !ok {
		return Other
	}

	out, err := exec.Command("file", path).Output()
	if err != nil {
		c.logger.Debug("file type sniff failed", "entry", e.Name(), "error", err)
		return Other
	}
	if strings.Contains(strings.ToLower(string(out)), sniffMarker) {
		return HTML
	}
	return Other
}
