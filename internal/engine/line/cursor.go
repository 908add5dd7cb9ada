package line

import "github.com/dshills/quill/internal/engine/markup"

// Position is a (line, column) pair. Columns count plain-text runes.
type Position struct {
	Line int
	Col  int
}

// Anchor addresses a position inside the underlying markup structure:
// the line, the style segment within the line's parsed fragment, and the
// rune offset within that segment. It is the structural view of a cursor
// and is rebuilt whenever the model changes, never held across mutations.
type Anchor struct {
	Line    int
	Segment int
	Rune    int
}

// Cursor is a single logical position carried in its three equivalent
// representations. The model reconciles all three; callers treat the
// struct as read-only and ask the model for moved copies.
type Cursor struct {
	Pos    Position
	Offset int
	Anchor Anchor
}

// CursorAt builds a fully reconciled cursor from a flattened offset.
func (m *Model) CursorAt(off int) Cursor {
	off = m.ClampOffset(off)
	pos := m.OffsetToPosition(off)
	return Cursor{Pos: pos, Offset: off, Anchor: m.anchorAt(pos)}
}

// CursorAtPosition builds a fully reconciled cursor from a (line, column)
// pair.
func (m *Model) CursorAtPosition(p Position) Cursor {
	p = m.ClampPosition(p)
	return Cursor{Pos: p, Offset: m.PositionToOffset(p), Anchor: m.anchorAt(p)}
}

// Reconcile rebuilds a cursor against the current model, treating the
// position as authoritative and clamping it into range. Used after every
// recompute so a stale cursor can never address outside the document.
func (m *Model) Reconcile(c Cursor) Cursor {
	return m.CursorAtPosition(c.Pos)
}

// anchorAt locates the style segment and intra-segment rune for a
// clamped position.
func (m *Model) anchorAt(p Position) Anchor {
	segs := markup.Parse(m.lines[p.Line].Markup)
	col := p.Col
	for i, seg := range segs {
		n := len([]rune(seg.Text))
		if col <= n {
			return Anchor{Line: p.Line, Segment: i, Rune: col}
		}
		col -= n
	}
	return Anchor{Line: p.Line, Segment: len(segs), Rune: 0}
}
