package render

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily wraps each line of text at the given rune width. Lines that
// already fit are left untouched, so markdown indentation survives. Words
// longer than the width stay on their own line unbroken. Width 0 or less
// leaves the text unwrapped.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	indentWidth := utf8.RuneCountInString(indent)

	words := strings.Fields(trimmed)
	if len(words) == 0 {
		return []string{line}
	}

	var lines []string
	cur := words[0]
	curWidth := indentWidth + utf8.RuneCountInString(cur)

	for _, word := range words[1:] {
		w := utf8.RuneCountInString(word)
		if curWidth+1+w > width {
			lines = append(lines, indent+cur)
			cur = word
			curWidth = indentWidth + w
			continue
		}
		cur += " " + word
		curWidth += 1 + w
	}
	return append(lines, indent+cur)
}
