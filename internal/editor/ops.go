package editor

// deleteSelectionOrRune removes the active selection, or the single
// rune under the cursor when no selection is active. A cursor sitting
// on a line separator deletes nothing; x never joins lines.
func (e *Editor) deleteSelectionOrRune() error {
	if sel := e.selection; sel != nil && sel.Start < sel.End {
		e.clearSelection()
		return e.surf.DeleteRange(sel.Start, sel.End)
	}
	e.clearSelection()

	off := e.surf.Cursor().Offset
	r, ok := e.surf.Model().RuneAt(off)
	if !ok || r == '\n' {
		return nil
	}
	return e.surf.DeleteRange(off, off+1)
}

// deleteCurrentLine removes the line under the cursor. The removed
// text lands in the yank register so dd behaves as cut.
func (e *Editor) deleteCurrentLine() error {
	idx := e.surf.Cursor().Pos.Line
	e.board.Write(e.surf.Model().PlainLine(idx))
	e.clearSelection()
	return e.surf.DeleteLine(idx)
}

// yankSelectionOrLine copies the active selection, or the current line
// when no selection is active, into the register. The document is not
// changed.
func (e *Editor) yankSelectionOrLine() error {
	if sel := e.selection; sel != nil && sel.Start < sel.End {
		e.board.Write(e.rangeText(sel.Start, sel.End))
		e.clearSelection()
		return nil
	}
	e.board.Write(e.surf.Model().PlainLine(e.surf.Cursor().Pos.Line))
	return nil
}

// paste inserts the register content at the cursor, reflowed like any
// other typed or pasted text.
func (e *Editor) paste() error {
	text, err := e.board.Read()
	if err != nil || text == "" {
		return ErrNothingToPaste
	}
	return e.insertAndReflow(text)
}

// rangeText returns the plain text between two flattened offsets.
func (e *Editor) rangeText(start, end int) string {
	flat := []rune(e.surf.Model().Flatten())
	if start < 0 {
		start = 0
	}
	if end > len(flat) {
		end = len(flat)
	}
	if start >= end {
		return ""
	}
	return string(flat[start:end])
}
