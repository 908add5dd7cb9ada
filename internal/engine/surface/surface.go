package surface

import (
	"errors"
	"strings"

	"github.com/dshills/quill/internal/engine/line"
	"github.com/dshills/quill/internal/engine/markup"
)

// Errors returned by surface operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrLineOutOfRange   = errors.New("line index out of range")
)

// Surface is the rich-text editing area: the ordered markup fragments,
// the line model derived from them, and the active cursor.
type Surface struct {
	lines     []string
	model     *line.Model
	cursor    line.Cursor
	highlight *highlightSpan
}

// New creates a surface from initial markup fragments. Fragments are
// canonicalized; empty input yields a single empty line. The cursor
// starts at the top of the document.
func New(fragments []string) *Surface {
	s := &Surface{}
	s.setLines(fragments)
	s.cursor = s.model.CursorAt(0)
	return s
}

// setLines canonicalizes and installs fragments, then recomputes the
// model. The cursor is not touched; callers position it per their rule.
func (s *Surface) setLines(fragments []string) {
	if len(fragments) == 0 {
		fragments = []string{""}
	}
	s.lines = make([]string, len(fragments))
	for i, f := range fragments {
		s.lines[i] = markup.Canonical(f)
	}
	s.model = line.Compute(s.lines)
}

// Model returns the current line model.
func (s *Surface) Model() *line.Model {
	return s.model
}

// Cursor returns the active cursor.
func (s *Surface) Cursor() line.Cursor {
	return s.cursor
}

// SetCursorOffset moves the cursor to a flattened offset, clamped into
// range.
func (s *Surface) SetCursorOffset(off int) {
	s.cursor = s.model.CursorAt(off)
}

// SetCursorPosition moves the cursor to a (line, column) pair, clamped
// into range.
func (s *Surface) SetCursorPosition(p line.Position) {
	s.cursor = s.model.CursorAtPosition(p)
}

// InsertText inserts plain text at a flattened offset. Text may contain
// newlines, which split the target line. The inserted text inherits the
// formatting in effect at the insertion point. The cursor lands at the
// end of the inserted text.
func (s *Surface) InsertText(offset int, text string) error {
	if offset < 0 || offset > s.model.Len() {
		return ErrOffsetOutOfRange
	}
	if text == "" {
		return nil
	}

	p := s.model.OffsetToPosition(offset)
	segs := markup.Parse(s.lines[p.Line])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		s.lines[p.Line] = markup.Render(markup.InsertAt(segs, p.Col, text))
	} else {
		left, right := markup.SplitAt(segs, p.Col)
		first := append(left, markup.Segment{Text: parts[0]})

		replacement := make([]string, 0, len(parts))
		replacement = append(replacement, markup.Render(first))
		for _, mid := range parts[1 : len(parts)-1] {
			replacement = append(replacement, markup.Render([]markup.Segment{{Text: mid}}))
		}
		last := append([]markup.Segment{{Text: parts[len(parts)-1]}}, right...)
		replacement = append(replacement, markup.Render(last))

		s.lines = splice(s.lines, p.Line, p.Line+1, replacement)
	}

	s.model = line.Compute(s.lines)
	s.cursor = s.model.CursorAt(offset + len([]rune(text)))
	return nil
}

// DeleteRange removes the flattened range [start, end). Deleting across
// a separator joins the surrounding lines. The cursor lands at the start
// of the removed range.
func (s *Surface) DeleteRange(start, end int) error {
	if start < 0 || start > end || end > s.model.Len() {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}

	sp := s.model.OffsetToPosition(start)
	ep := s.model.OffsetToPosition(end)

	left, _ := markup.SplitAt(markup.Parse(s.lines[sp.Line]), sp.Col)
	_, right := markup.SplitAt(markup.Parse(s.lines[ep.Line]), ep.Col)

	merged := markup.Render(append(left, right...))
	s.lines = splice(s.lines, sp.Line, ep.Line+1, []string{merged})

	s.model = line.Compute(s.lines)
	s.cursor = s.model.CursorAt(start)
	return nil
}

// DeleteLine removes the line at index. Deleting the only line leaves a
// single empty line. The cursor moves to the start of the line now
// occupying the index, clamped to the last line.
func (s *Surface) DeleteLine(index int) error {
	if index < 0 || index >= len(s.lines) {
		return ErrLineOutOfRange
	}

	if len(s.lines) == 1 {
		s.lines = []string{""}
	} else {
		s.lines = splice(s.lines, index, index+1, nil)
	}

	s.model = line.Compute(s.lines)
	s.cursor = s.model.CursorAtPosition(line.Position{Line: index})
	return nil
}

// ReplaceAll swaps the whole document content for pre-wrapped fragments.
// The cursor moves to the start of the document.
func (s *Surface) ReplaceAll(fragments []string) {
	s.setLines(fragments)
	s.cursor = s.model.CursorAt(0)
}

// ReplaceLine substitutes one line with one or more fragments, as when
// reflowing an overlong line during typing. The cursor stays at its
// current position, reconciled against the new layout.
func (s *Surface) ReplaceLine(index int, fragments []string) error {
	if index < 0 || index >= len(s.lines) {
		return ErrLineOutOfRange
	}
	if len(fragments) == 0 {
		fragments = []string{""}
	}

	canon := make([]string, len(fragments))
	for i, f := range fragments {
		canon[i] = markup.Canonical(f)
	}
	s.lines = splice(s.lines, index, index+1, canon)

	s.model = line.Compute(s.lines)
	s.cursor = s.model.Reconcile(s.cursor)
	return nil
}

// splice replaces lines[from:to] with repl.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}
