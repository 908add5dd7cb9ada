package line

import (
	"strings"

	"github.com/dshills/quill/internal/engine/markup"
)

// Line is one logical row of the document.
type Line struct {
	// Markup is the raw formatted fragment for this row.
	Markup string

	plain string
	runes int
}

// Plain returns the line's plain-text projection.
func (l Line) Plain() string {
	return l.plain
}

// Len returns the plain-text length of the line in runes.
func (l Line) Len() int {
	return l.runes
}

// Model is the derived line/column/offset view over document content.
// It is immutable once computed; mutators rebuild it after every change.
type Model struct {
	lines []Line
	total int
}

// Compute derives a model from ordered markup fragments. Empty input
// yields a model with exactly one empty line.
func Compute(fragments []string) *Model {
	if len(fragments) == 0 {
		fragments = []string{""}
	}

	m := &Model{lines: make([]Line, len(fragments))}
	for i, frag := range fragments {
		plain := markup.PlainText(frag)
		m.lines[i] = Line{
			Markup: frag,
			plain:  plain,
			runes:  len([]rune(plain)),
		}
		m.total += m.lines[i].runes
	}
	// One separator between each pair of adjacent lines.
	m.total += len(m.lines) - 1
	return m
}

// LineCount returns the number of lines. Always at least one.
func (m *Model) LineCount() int {
	return len(m.lines)
}

// Line returns the line at index i.
func (m *Model) Line(i int) (Line, bool) {
	if i < 0 || i >= len(m.lines) {
		return Line{}, false
	}
	return m.lines[i], true
}

// PlainLine returns the plain text of line i, or "" if out of range.
func (m *Model) PlainLine(i int) string {
	if i < 0 || i >= len(m.lines) {
		return ""
	}
	return m.lines[i].plain
}

// LineLen returns the plain-text rune length of line i, or 0 if out of range.
func (m *Model) LineLen(i int) int {
	if i < 0 || i >= len(m.lines) {
		return 0
	}
	return m.lines[i].runes
}

// Fragments returns the markup fragments in order.
func (m *Model) Fragments() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.Markup
	}
	return out
}

// Flatten returns the plain-text projection: all lines joined with a
// single newline separator.
func (m *Model) Flatten() string {
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.plain)
	}
	return b.String()
}

// Len returns the total rune length of the flattened projection.
func (m *Model) Len() int {
	return m.total
}

// PositionToOffset converts a (line, column) pair to a flattened offset.
// The position is clamped into valid range first.
func (m *Model) PositionToOffset(p Position) int {
	p = m.ClampPosition(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += m.lines[i].runes + 1
	}
	return off + p.Col
}

// OffsetToPosition converts a flattened offset to a (line, column) pair.
// The offset is clamped into [0, Len()] first. The offset Len() resolves
// to the end of the last line.
func (m *Model) OffsetToPosition(off int) Position {
	off = m.ClampOffset(off)
	for i, l := range m.lines {
		if off <= l.runes {
			return Position{Line: i, Col: off}
		}
		off -= l.runes + 1
	}
	last := len(m.lines) - 1
	return Position{Line: last, Col: m.lines[last].runes}
}

// ClampOffset clamps an offset into [0, Len()].
func (m *Model) ClampOffset(off int) int {
	if off < 0 {
		return 0
	}
	if off > m.total {
		return m.total
	}
	return off
}

// ClampPosition clamps a position onto an existing line and column.
func (m *Model) ClampPosition(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(m.lines) {
		p.Line = len(m.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := m.lines[p.Line].runes; p.Col > max {
		p.Col = max
	}
	return p
}

// RuneAt returns the rune at the given offset in the flattened projection.
// Separators read as '\n'. Returns false at end-of-document.
func (m *Model) RuneAt(off int) (rune, bool) {
	if off < 0 || off >= m.total {
		return 0, false
	}
	p := m.OffsetToPosition(off)
	runes := []rune(m.lines[p.Line].plain)
	if p.Col >= len(runes) {
		return '\n', true
	}
	return runes[p.Col], true
}
