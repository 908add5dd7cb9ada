package markup

import (
	"strings"
)

// Style is a bitmask of inline formatting applied to a run of text.
type Style uint8

// Style bits, one per supported inline tag.
const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrike
	StyleMark
)

// Has reports whether every bit in other is set in s.
func (s Style) Has(other Style) bool {
	return s&other == other
}

// Segment is a maximal run of text sharing one Style.
type Segment struct {
	Text  string
	Style Style
}

// tagStyles maps tag names to style bits. Render emits tags in the order
// of renderOrder so that canonical output is deterministic.
var tagStyles = map[string]Style{
	"b":    StyleBold,
	"i":    StyleItalic,
	"u":    StyleUnderline,
	"s":    StyleStrike,
	"mark": StyleMark,
}

var renderOrder = []struct {
	tag   string
	style Style
}{
	{"b", StyleBold},
	{"i", StyleItalic},
	{"u", StyleUnderline},
	{"s", StyleStrike},
	{"mark", StyleMark},
}

// Parse splits a fragment into style runs. Unrecognized tags and unmatched
// close tags are treated as literal text. Open tags left unterminated at
// the end of the fragment are implicitly closed; Render will not reproduce
// them, so parsing also normalizes malformed input.
func Parse(s string) []Segment {
	var (
		segs    []Segment
		text    strings.Builder
		current Style
	)

	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Text: text.String(), Style: current})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '<' {
			j := strings.IndexByte(s[i:], '<')
			if j < 0 {
				text.WriteString(s[i:])
				break
			}
			text.WriteString(s[i : i+j])
			i += j
			continue
		}

		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			text.WriteString(s[i:])
			break
		}
		tag := s[i+1 : i+end]
		closing := strings.HasPrefix(tag, "/")
		name := strings.TrimPrefix(tag, "/")

		style, ok := tagStyles[name]
		if !ok {
			// Literal "<...>" that is not one of ours.
			text.WriteString(s[i : i+end+1])
			i += end + 1
			continue
		}

		if closing && !current.Has(style) {
			// Unmatched close tag: drop it rather than corrupt state.
			i += end + 1
			continue
		}

		flush()
		if closing {
			current &^= style
		} else {
			current |= style
		}
		i += end + 1
	}

	flush()
	return normalize(segs)
}

// normalize drops empty runs and merges adjacent runs with equal style.
func normalize(segs []Segment) []Segment {
	out := segs[:0]
	for _, seg := range segs {
		if seg.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == seg.Style {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Render serializes style runs back to a fragment. Output is canonical:
// tags open in a fixed order, close in reverse, and only change between
// runs when the style actually changes.
func Render(segs []Segment) string {
	var (
		b       strings.Builder
		current Style
	)

	for _, seg := range normalize(segs) {
		if seg.Style != current {
			writeTransition(&b, current, seg.Style)
			current = seg.Style
		}
		b.WriteString(seg.Text)
	}
	writeTransition(&b, current, 0)
	return b.String()
}

// writeTransition closes and opens tags to move from one style to another.
// All open tags beyond the shared prefix of the two styles (in render
// order) are closed, then the target's remaining tags are opened. This
// keeps nesting well-formed for every transition.
func writeTransition(b *strings.Builder, from, to Style) {
	// Find the outermost render-order position where the styles diverge;
	// everything at or inside it must be closed and reopened.
	divergence := len(renderOrder)
	for idx, entry := range renderOrder {
		if from.Has(entry.style) != to.Has(entry.style) {
			divergence = idx
			break
		}
	}

	for i := len(renderOrder) - 1; i >= divergence; i-- {
		if from.Has(renderOrder[i].style) {
			b.WriteString("</")
			b.WriteString(renderOrder[i].tag)
			b.WriteString(">")
		}
	}
	for i := divergence; i < len(renderOrder); i++ {
		if to.Has(renderOrder[i].style) {
			b.WriteString("<")
			b.WriteString(renderOrder[i].tag)
			b.WriteString(">")
		}
	}
}

// PlainText strips all recognized tags from a fragment.
func PlainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	for _, seg := range Parse(s) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// PlainLen returns the number of runes in the fragment's plain text.
func PlainLen(s string) int {
	return len([]rune(PlainText(s)))
}

// Balanced reports whether rendering the parsed fragment reproduces a
// well-formed equivalent: every recognized open tag has a matching close.
func Balanced(s string) bool {
	var depth Style
	for i := 0; i < len(s); {
		if s[i] != '<' {
			j := strings.IndexByte(s[i:], '<')
			if j < 0 {
				break
			}
			i += j
			continue
		}
		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			break
		}
		tag := s[i+1 : i+end]
		closing := strings.HasPrefix(tag, "/")
		name := strings.TrimPrefix(tag, "/")
		if style, ok := tagStyles[name]; ok {
			if closing {
				if !depth.Has(style) {
					return false
				}
				depth &^= style
			} else {
				if depth.Has(style) {
					return false
				}
				depth |= style
			}
		}
		i += end + 1
	}
	return depth == 0
}

// Canonical reparses and rerenders a fragment, producing the canonical
// form all other engine components work with.
func Canonical(s string) string {
	return Render(Parse(s))
}
