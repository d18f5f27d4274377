// Package pipeline runs the conversion end to end: open the archive,
// classify each entry in storage order, render HTML entries into the output
// text file and copy everything else into the output directory.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ziptext/ziptext/internal/archive"
	"github.com/ziptext/ziptext/internal/classify"
	"github.com/ziptext/ziptext/internal/config"
	"github.com/ziptext/ziptext/internal/render"
	"github.com/ziptext/ziptext/internal/writer"
)

// Run executes the full ziptext pipeline. The run is linear and aborts on
// the first error; the scratch directory used by content sniffing is removed
// on every exit path.
func Run(opts *config.Options, logger *slog.Logger) (err error) {
	if logger == nil {
		logger = slog.Default()
	}

	r, err := archive.Open(opts.InputFile)
	if err != nil {
		return err
	}
	defer r.Close()

	cls, cleanup, err := newClassifier(r, opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	tw, err := writer.NewTextWriter(opts.OutputTextFile, opts.Artifacts)
	if err != nil {
		return err
	}
	defer tw.Close()

	style := render.Style(opts.Format)
	var converted, copied, skipped int

	for _, e := range r.Entries() {
		rel, ok := e.SafePath()
		if !ok {
			skipped++
			logger.Debug("skipping unsafe entry name", "name", e.Name())
			continue
		}

		kind := cls.Classify(e)
		logger.Debug("classified entry", "name", e.Name(), "kind", kind)

		switch kind {
		case classify.Directory:
			if err := writer.EnsureDir(opts.OutputDir, rel); err != nil {
				return err
			}
		case classify.HTML:
			if err := convertEntry(e, tw, opts.Width, style); err != nil {
				return err
			}
			converted++
		default:
			if err := copyEntry(e, opts.OutputDir, rel); err != nil {
				return err
			}
			copied++
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}

	logger.Info("done",
		"converted", converted,
		"copied", copied,
		"skipped", skipped,
		"text_file", opts.OutputTextFile,
		"output_dir", opts.OutputDir,
	)
	return nil
}

// newClassifier picks the classification strategy. Content sniffing needs the
// archive extracted to disk first, so it also sets up the scratch directory
// and returns its removal as the cleanup function.
func newClassifier(r *archive.Reader, opts *config.Options, logger *slog.Logger) (classify.Classifier, func() error, error) {
	if !opts.Sniff {
		return classify.ExtensionClassifier{}, func() error { return nil }, nil
	}

	scratch, err := archive.NewScratch()
	if err != nil {
		return nil, nil, err
	}
	if err := r.ExtractAll(scratch); err != nil {
		scratch.Remove()
		return nil, nil, err
	}
	logger.Debug("extracted archive for sniffing", "dir", scratch.Dir())

	return classify.NewSniffClassifier(scratch, logger), scratch.Remove, nil
}

func convertEntry(e *archive.Entry, tw *writer.TextWriter, width int, style render.Style) error {
	rc, err := e.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", e.Name(), err)
	}
	defer rc.Close()

	text, err := render.Render(rc, width, style)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", e.Name(), err)
	}
	return tw.WriteBlock(e.Name(), text)
}

func copyEntry(e *archive.Entry, outputDir, rel string) error {
	rc, err := e.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", e.Name(), err)
	}
	defer rc.Close()

	return writer.Copy(outputDir, rel, rc)
}
