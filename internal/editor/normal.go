package editor

import (
	"github.com/dshills/quill/internal/engine/line"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/mode"
)

// handleNormalKey interprets a keystroke as a normal-mode command.
func (e *Editor) handleNormalKey(ev key.Event) error {
	// A buffered prefix expires after the idle timeout.
	if e.pending != 0 && e.now().Sub(e.pendingAt) > pendingTimeout {
		e.pending = 0
	}

	if e.pending != 0 {
		return e.handlePendingKey(ev)
	}

	switch ev.Code {
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
	case key.CodeHome:
		e.moveLineStart()
		return nil
	case key.CodeEnd:
		e.moveLineEnd()
		return nil
	case key.CodeEscape:
		e.clearSelection()
		return nil
	case key.CodeDelete:
		return e.deleteSelectionOrRune()
	}

	if !ev.IsRune() {
		return nil
	}

	switch ev.Rune {
	case 'h':
		e.moveHorizontal(-1)
	case 'l':
		e.moveHorizontal(1)
	case 'k':
		e.moveVertical(-1)
	case 'j':
		e.moveVertical(1)
	case '0':
		e.moveLineStart()
	case '$':
		e.moveLineEnd()
	case 'G':
		e.moveDocumentEnd()
	case 'g', 'd', 'y':
		e.pending = ev.Rune
		e.pendingAt = e.now()
	case 'i':
		return e.modes.Switch(mode.Insert, nil)
	case 'v':
		e.toggleSelection()
	case 'x':
		return e.deleteSelectionOrRune()
	case 'p':
		return e.paste()
	case ':', '/', '?':
		return e.enterCommandMode(ev.Rune)
	}
	return nil
}

// handlePendingKey completes or breaks a buffered two-key sequence.
func (e *Editor) handlePendingKey(ev key.Event) error {
	prefix := e.pending
	e.pending = 0

	if !ev.IsRune() || ev.Rune != prefix {
		// Broken sequence: the second key is reprocessed on its own.
		return e.handleNormalKey(ev)
	}

	switch prefix {
	case 'g':
		e.moveDocumentStart()
	case 'd':
		return e.deleteCurrentLine()
	case 'y':
		return e.yankSelectionOrLine()
	}
	return nil
}

// enterCommandMode transitions NORMAL -> COMMAND. A non-empty selection
// at the moment of transition is captured as the implicit operand and
// highlighted for the duration of command mode.
func (e *Editor) enterCommandMode(prefix rune) error {
	e.savedCursor = e.surf.Cursor().Offset

	ctx := &mode.Context{Prefix: prefix}
	if sel := e.selection; sel != nil && sel.Start < sel.End {
		ctx.Selection = &mode.Selection{Start: sel.Start, End: sel.End}
		if err := e.surf.HighlightRange(sel.Start, sel.End); err != nil {
			return err
		}
	}
	return e.modes.Switch(mode.Command, ctx)
}

// cancelCommandMode returns to normal mode restoring the pre-highlight
// cursor, collapsed to the selection end.
func (e *Editor) cancelCommandMode() error {
	cm, ok := e.modes.Current().(*mode.CommandMode)
	if ok && cm.Selection() != nil {
		e.surf.ClearHighlight()
		e.surf.SetCursorOffset(cm.Selection().End)
	} else {
		e.surf.SetCursorOffset(e.savedCursor)
	}
	e.clearSelection()
	return e.modes.Switch(e.returnMode(), nil)
}

// toggleSelection starts a selection at the cursor, or clears an active
// one.
func (e *Editor) toggleSelection() {
	if e.selection != nil {
		e.clearSelection()
		return
	}
	off := e.surf.Cursor().Offset
	e.selAnchor = off
	e.selection = &mode.Selection{Start: off, End: off}
}

// clearSelection drops the active selection.
func (e *Editor) clearSelection() {
	e.selection = nil
}

// extendSelection grows the active selection to the current cursor.
func (e *Editor) extendSelection() {
	if e.selection == nil {
		return
	}
	off := e.surf.Cursor().Offset
	start, end := e.selAnchor, off
	if start > end {
		start, end = end, start
	}
	e.selection.Start, e.selection.End = start, end
}

// moveHorizontal moves the cursor by delta offsets, crossing line
// boundaries, clamped to the document.
func (e *Editor) moveHorizontal(delta int) {
	e.surf.SetCursorOffset(e.surf.Cursor().Offset + delta)
	e.desiredCol = e.surf.Cursor().Pos.Col
	e.extendSelection()
}

// moveVertical moves by delta lines, preserving the desired column and
// clamping to shorter lines.
func (e *Editor) moveVertical(delta int) {
	pos := e.surf.Cursor().Pos
	e.surf.SetCursorPosition(line.Position{Line: pos.Line + delta, Col: e.desiredCol})
	e.extendSelection()
}

func (e *Editor) moveLineStart() {
	pos := e.surf.Cursor().Pos
	e.surf.SetCursorPosition(line.Position{Line: pos.Line})
	e.desiredCol = 0
	e.extendSelection()
}

func (e *Editor) moveLineEnd() {
	pos := e.surf.Cursor().Pos
	col := e.surf.Model().LineLen(pos.Line)
	e.surf.SetCursorPosition(line.Position{Line: pos.Line, Col: col})
	e.desiredCol = col
	e.extendSelection()
}

func (e *Editor) moveDocumentStart() {
	e.surf.SetCursorOffset(0)
	e.desiredCol = 0
	e.extendSelection()
}

func (e *Editor) moveDocumentEnd() {
	e.surf.SetCursorOffset(e.surf.Model().Len())
	e.desiredCol = e.surf.Cursor().Pos.Col
	e.extendSelection()
}
