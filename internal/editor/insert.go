package editor

import (
	"github.com/dshills/quill/internal/engine/line"
	"github.com/dshills/quill/internal/engine/markup"
	"github.com/dshills/quill/internal/engine/wrap"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/mode"
)

// handleInsertKey interprets a keystroke while insert mode is active.
func (e *Editor) handleInsertKey(ev key.Event) error {
	switch ev.Code {
	case key.CodeEscape:
		return e.modes.Switch(mode.Normal, nil)
	case key.CodeEnter:
		return e.insertAndReflow("\n")
	case key.CodeBackspace:
		off := e.surf.Cursor().Offset
		if off == 0 {
			return nil
		}
		return e.surf.DeleteRange(off-1, off)
	case key.CodeLeft:
		e.moveHorizontal(-1)
		return nil
	case key.CodeRight:
		e.moveHorizontal(1)
		return nil
	case key.CodeUp:
		e.moveVertical(-1)
		return nil
	case key.CodeDown:
		e.moveVertical(1)
		return nil
	}

	if !ev.IsRune() {
		return nil
	}
	return e.insertAndReflow(string(ev.Rune))
}

// insertAndReflow inserts text at the cursor and re-wraps any line the
// insertion pushed past the width limit. The cursor follows the
// inserted text across soft breaks.
func (e *Editor) insertAndReflow(text string) error {
	start := e.surf.Cursor().Offset
	if err := e.surf.InsertText(start, text); err != nil {
		return err
	}

	first := e.surf.Model().OffsetToPosition(start).Line
	last := e.surf.Cursor().Pos.Line
	for idx := first; idx <= last; idx++ {
		if e.surf.Model().LineLen(idx) <= e.width {
			continue
		}
		added, err := e.rewrapLine(idx)
		if err != nil {
			return err
		}
		// Split products are within the limit; skip past them.
		last += added
		idx += added
	}

	e.desiredCol = e.surf.Cursor().Pos.Col
	return nil
}

// rewrapLine replaces one overlong line with its wrapped form and
// re-derives the cursor. It returns the number of lines added.
func (e *Editor) rewrapLine(idx int) (int, error) {
	pos := e.surf.Cursor().Pos
	ln, ok := e.surf.Model().Line(idx)
	if !ok {
		return 0, nil
	}

	wrapped := wrap.Wrap(ln.Markup, e.width)
	if err := e.surf.ReplaceLine(idx, wrapped); err != nil {
		return 0, err
	}

	switch {
	case pos.Line == idx:
		// Soft breaks preserve every rune, so the old column walks
		// cleanly through the wrapped fragments.
		col := pos.Col
		for i, frag := range wrapped {
			n := markup.PlainLen(frag)
			if col <= n || i == len(wrapped)-1 {
				e.surf.SetCursorPosition(line.Position{Line: idx + i, Col: col})
				break
			}
			col -= n
		}
	case pos.Line > idx:
		e.surf.SetCursorPosition(line.Position{Line: pos.Line + len(wrapped) - 1, Col: pos.Col})
	}
	return len(wrapped) - 1, nil
}
