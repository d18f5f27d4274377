// Package render converts HTML documents to plain text at a configured
// column width, with a selectable decoration style.
package render

import (
	"fmt"
	stdhtml "html"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Style selects how HTML structure is decorated in the text output.
type Style string

const (
	// StyleTrivial strips markup with minimal structural hints.
	StyleTrivial Style = "trivial"
	// StylePlain produces a simple readable text layout with list bullets
	// and quote prefixes.
	StylePlain Style = "plain"
	// StyleRich keeps link and emphasis markers using markdown decoration.
	StyleRich Style = "rich"
)

// removeTags are HTML tags whose content never belongs in text output.
var removeTags = []string{"script", "style", "noscript", "iframe"}

var strictPolicy = bluemonday.StrictPolicy()

// Render reads an HTML document and renders it as plain text. The same
// input, width and style always produce the same output. Width 0 disables
// wrapping.
func Render(r io.Reader, width int, style Style) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading html: %w", err)
	}

	var text string
	switch style {
	case StyleTrivial:
		text = renderTrivial(data)
	case StylePlain:
		text, err = renderPlain(data)
	case StyleRich:
		text, err = renderRich(data)
	default:
		return "", fmt.Errorf("unknown decoration style %q", style)
	}
	if err != nil {
		return "", err
	}

	return Wrap(text, width), nil
}

// renderTrivial strips all markup, keeping only text content. Lines are
// whitespace-normalized; blank lines are dropped.
func renderTrivial(data []byte) string {
	text := stdhtml.UnescapeString(strictPolicy.Sanitize(string(data)))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = normalizeSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderRich converts the document to markdown, so links, emphasis and
// headings keep textual markers.
func renderRich(data []byte) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	for _, tag := range removeTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	md, err := conv.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("html-to-markdown conversion: %w", err)
	}
	return md, nil
}

// normalizeSpace collapses all runs of whitespace to single spaces and trims
// the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
