package line

import (
	"strings"
	"testing"
)

func TestComputeEmpty(t *testing.T) {
	m := Compute(nil)

	if m.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", m.LineCount())
	}
	if m.Len() != 0 {
		t.Errorf("expected length 0, got %d", m.Len())
	}
	if m.Flatten() != "" {
		t.Errorf("expected empty projection, got %q", m.Flatten())
	}
}

func TestComputeMultiline(t *testing.T) {
	m := Compute([]string{"hello world", "second line"})

	if m.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", m.LineCount())
	}
	if m.Len() != 23 {
		t.Errorf("expected length 23, got %d", m.Len())
	}
	if m.Flatten() != "hello world\nsecond line" {
		t.Errorf("unexpected projection %q", m.Flatten())
	}
}

func TestComputeStripsMarkup(t *testing.T) {
	m := Compute([]string{"<b>bold</b> text"})

	if m.PlainLine(0) != "bold text" {
		t.Errorf("expected markup stripped, got %q", m.PlainLine(0))
	}
	if m.LineLen(0) != 9 {
		t.Errorf("expected length 9, got %d", m.LineLen(0))
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	fragments := []string{"one", "", "<i>three</i>", "four words on a line"}
	m := Compute(fragments)

	parts := strings.Split(m.Flatten(), "\n")
	if len(parts) != m.LineCount() {
		t.Fatalf("split produced %d parts, want %d", len(parts), m.LineCount())
	}
	for i, p := range parts {
		if p != m.PlainLine(i) {
			t.Errorf("line %d: split %q != plain %q", i, p, m.PlainLine(i))
		}
	}
}

func TestOffsetPositionBijection(t *testing.T) {
	m := Compute([]string{"abc", "", "defg", "<b>hi</b>"})

	for off := 0; off <= m.Len(); off++ {
		p := m.OffsetToPosition(off)
		back := m.PositionToOffset(p)
		if back != off {
			t.Errorf("offset %d -> %+v -> %d", off, p, back)
		}
	}
}

func TestOffsetToPositionSeparator(t *testing.T) {
	m := Compute([]string{"ab", "cd"})

	// Offset 2 is end of the first line, offset 3 is start of the second.
	if p := m.OffsetToPosition(2); p != (Position{Line: 0, Col: 2}) {
		t.Errorf("offset 2: got %+v", p)
	}
	if p := m.OffsetToPosition(3); p != (Position{Line: 1, Col: 0}) {
		t.Errorf("offset 3: got %+v", p)
	}
	// End-of-document resolves to end of the last line.
	if p := m.OffsetToPosition(m.Len()); p != (Position{Line: 1, Col: 2}) {
		t.Errorf("end of document: got %+v", p)
	}
}

func TestClampOffset(t *testing.T) {
	m := Compute([]string{"abcd"})

	if got := m.ClampOffset(-5); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := m.ClampOffset(100); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestClampPosition(t *testing.T) {
	m := Compute([]string{"abc", "x"})

	if p := m.ClampPosition(Position{Line: 5, Col: 9}); p != (Position{Line: 1, Col: 1}) {
		t.Errorf("got %+v", p)
	}
	if p := m.ClampPosition(Position{Line: -1, Col: -1}); p != (Position{}) {
		t.Errorf("got %+v", p)
	}
}

func TestRuneAt(t *testing.T) {
	m := Compute([]string{"ab", "c"})

	tests := []struct {
		off  int
		want rune
		ok   bool
	}{
		{0, 'a', true},
		{1, 'b', true},
		{2, '\n', true},
		{3, 'c', true},
		{4, 0, false},
	}

	for _, tt := range tests {
		r, ok := m.RuneAt(tt.off)
		if ok != tt.ok || (ok && r != tt.want) {
			t.Errorf("RuneAt(%d) = %q, %v; want %q, %v", tt.off, r, ok, tt.want, tt.ok)
		}
	}
}

func TestCursorViewsAgree(t *testing.T) {
	m := Compute([]string{"a <b>bold</b> tail", "second"})

	for off := 0; off <= m.Len(); off++ {
		c := m.CursorAt(off)
		if c.Offset != off {
			t.Fatalf("offset view diverged: %d != %d", c.Offset, off)
		}
		if m.PositionToOffset(c.Pos) != off {
			t.Errorf("position view diverged at offset %d: %+v", off, c.Pos)
		}
		if c.Anchor.Line != c.Pos.Line {
			t.Errorf("anchor line diverged at offset %d", off)
		}
	}
}

func TestReconcileClampsStaleCursor(t *testing.T) {
	m := Compute([]string{"short"})
	stale := Cursor{Pos: Position{Line: 9, Col: 42}, Offset: 99}

	c := m.Reconcile(stale)
	if c.Pos != (Position{Line: 0, Col: 5}) {
		t.Errorf("expected clamp to end of line, got %+v", c.Pos)
	}
	if c.Offset != 5 {
		t.Errorf("expected offset 5, got %d", c.Offset)
	}
}
