// Package export converts the document to external formats. The editor
// hands over accurate line boundaries; conversion beyond that is this
// package's concern.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/quill/internal/engine/markup"
)

// Format identifies an export target.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// ParseFormat maps a user-supplied format name, defaulting to text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Write renders the document's markup fragments to w in the given
// format, one output line per document line.
func Write(w io.Writer, format Format, fragments []string) error {
	for i, frag := range fragments {
		var line string
		switch format {
		case FormatMarkdown:
			line = toMarkdown(frag)
		default:
			line = markup.PlainText(frag)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if i < len(fragments)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile renders the document to a file.
func WriteFile(path string, format Format, fragments []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := Write(f, format, fragments); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

// markdownMarks maps style bits to their Markdown delimiters.
// Underline has no Markdown form and keeps its HTML tag.
var markdownMarks = []struct {
	style       markup.Style
	open, close string
}{
	{markup.StyleBold, "**", "**"},
	{markup.StyleItalic, "*", "*"},
	{markup.StyleStrike, "~~", "~~"},
	{markup.StyleUnderline, "<u>", "</u>"},
}

// toMarkdown converts one fragment to Markdown inline notation.
func toMarkdown(frag string) string {
	var b strings.Builder
	for _, seg := range markup.Parse(frag) {
		for _, m := range markdownMarks {
			if seg.Style.Has(m.style) {
				b.WriteString(m.open)
			}
		}
		b.WriteString(seg.Text)
		for i := len(markdownMarks) - 1; i >= 0; i-- {
			if seg.Style.Has(markdownMarks[i].style) {
				b.WriteString(markdownMarks[i].close)
			}
		}
	}
	return b.String()
}
