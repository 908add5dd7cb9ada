package wrap

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/engine/markup"
)

const (
	// DefaultWidth is the column limit used when none is configured.
	DefaultWidth = 80

	// breakWindow is how far back from the limit a whitespace break
	// point is preferred before falling back to a hard break.
	breakWindow = 20
)

// cluster is one grapheme cluster of styled content.
type cluster struct {
	text  string
	style markup.Style
	runes int
	space bool
}

// Wrap reflows a markup-bearing string into lines of at most width runes
// of plain text. Explicit newlines in the source always break. Empty
// input produces exactly one empty fragment.
func Wrap(content string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		out  []string
		cur  []cluster
		curW int
	)

	emit := func() {
		out = append(out, renderLine(cur))
		cur = cur[:0]
		curW = 0
	}

	for _, seg := range markup.Parse(content) {
		for part, text := range strings.Split(seg.Text, "\n") {
			if part > 0 {
				// Explicit break in the source.
				emit()
			}
			gr := uniseg.NewGraphemes(text)
			for gr.Next() {
				c := cluster{
					text:  gr.Str(),
					style: seg.Style,
					runes: len(gr.Runes()),
				}
				c.space = len(gr.Runes()) > 0 && unicode.IsSpace(gr.Runes()[0])

				if curW+c.runes > width && curW > 0 {
					cur, curW = breakLine(cur, curW, width, &out)
				}
				cur = append(cur, c)
				curW += c.runes
			}
		}
	}

	emit()
	return out
}

// breakLine emits a prefix of the current line and returns the carried
// remainder. The break lands after the last whitespace cluster within
// the trailing window; with no such whitespace the whole line is emitted
// as a hard break at the limit.
func breakLine(cur []cluster, curW, width int, out *[]string) ([]cluster, int) {
	breakAt := len(cur)
	trailing := 0
	for i := len(cur) - 1; i >= 0 && trailing < breakWindow; i-- {
		trailing += cur[i].runes
		if cur[i].space {
			breakAt = i + 1
			break
		}
	}

	*out = append(*out, renderLine(cur[:breakAt]))

	carry := make([]cluster, len(cur)-breakAt)
	copy(carry, cur[breakAt:])
	carryW := 0
	for _, c := range carry {
		carryW += c.runes
	}
	return carry, carryW
}

// renderLine merges clusters into style runs and renders a balanced
// fragment.
func renderLine(cs []cluster) string {
	if len(cs) == 0 {
		return ""
	}
	segs := make([]markup.Segment, 0, 4)
	for _, c := range cs {
		if n := len(segs); n > 0 && segs[n-1].Style == c.style {
			segs[n-1].Text += c.text
			continue
		}
		segs = append(segs, markup.Segment{Text: c.text, Style: c.style})
	}
	return markup.Render(segs)
}
