package editor

import (
	"github.com/dshills/quill/internal/engine/suggest"
	"github.com/dshills/quill/internal/engine/wrap"
)

// Review returns the active suggestion session, or nil.
func (e *Editor) Review() *suggest.Session {
	return e.reviewer.Active()
}

// DeliverSuggestion feeds an asynchronous transform response back into
// the session. A response with no outstanding request is discarded; a
// response whose target text changed while the request was in flight is
// discarded as stale.
func (e *Editor) DeliverSuggestion(newText string) error {
	target := e.inflight
	if target == nil {
		return nil
	}

	if e.currentTargetText(target) != target.text {
		e.abandonTransform()
		return ErrStaleTarget
	}

	if _, err := e.reviewer.Propose(target.text, newText); err != nil {
		e.abandonTransform()
		return err
	}
	if e.meter != nil {
		if err := e.meter.Consume(); err != nil {
			e.notify(err.Error())
		}
	}
	return nil
}

// DeliverTransformError reports an asynchronous transform failure. The
// outstanding request and its highlight are dropped.
func (e *Editor) DeliverTransformError(err error) {
	e.abandonTransform()
	if err != nil {
		e.notify(err.Error())
	}
}

// AcceptChunk marks one chunk accepted. The document is not touched;
// commits happen only at AcceptAll.
func (e *Editor) AcceptChunk(index int) error {
	sess := e.reviewer.Active()
	if sess == nil {
		return suggest.ErrNoReview
	}
	return sess.Accept(index)
}

// RejectChunk marks one chunk rejected. The document is not touched;
// commits happen only at AcceptAll.
func (e *Editor) RejectChunk(index int) error {
	sess := e.reviewer.Active()
	if sess == nil {
		return suggest.ErrNoReview
	}
	return sess.Reject(index)
}

// AcceptAll materializes the merged content honoring per-chunk
// resolutions, commits it over the transform target, and ends the
// session.
func (e *Editor) AcceptAll() error {
	merged, err := e.reviewer.AcceptAll()
	if err != nil {
		return err
	}
	return e.commitReview(merged)
}

// RejectAll discards the proposal outright, leaves the document
// untouched, and moves the cursor to the start of the document.
func (e *Editor) RejectAll() error {
	if _, err := e.reviewer.RejectAll(); err != nil {
		return err
	}
	e.abandonTransform()
	e.surf.SetCursorOffset(0)
	e.desiredCol = 0
	return nil
}

// CloseReview ends the session without committing anything.
func (e *Editor) CloseReview() {
	e.reviewer.Close()
	e.abandonTransform()
}

// commitReview writes the merged review result over the transform
// target: the original selection range, or the whole document.
func (e *Editor) commitReview(merged string) error {
	target := e.inflight
	e.inflight = nil

	if target != nil && target.selection != nil {
		sel := target.selection
		e.surf.ClearHighlight()
		if err := e.surf.DeleteRange(sel.Start, sel.End); err != nil {
			return err
		}
		if merged != "" {
			if err := e.surf.InsertText(sel.Start, merged); err != nil {
				return err
			}
		}
		e.reflowAfterCommit(sel.Start)
		return nil
	}

	e.surf.ReplaceAll(wrap.Wrap(merged, e.width))
	return nil
}

// reflowAfterCommit re-wraps the lines a committed review may have
// lengthened past the limit.
func (e *Editor) reflowAfterCommit(start int) {
	idx := e.surf.Model().OffsetToPosition(start).Line
	for idx < e.surf.Model().LineCount() {
		if e.surf.Model().LineLen(idx) <= e.width {
			if idx > e.surf.Cursor().Pos.Line {
				return
			}
			idx++
			continue
		}
		added, err := e.rewrapLine(idx)
		if err != nil {
			return
		}
		idx += added + 1
	}
}

// abandonTransform drops the outstanding request and its highlight.
func (e *Editor) abandonTransform() {
	if e.inflight != nil && e.inflight.selection != nil {
		e.surf.ClearHighlight()
		e.surf.SetCursorOffset(e.inflight.selection.End)
	}
	e.inflight = nil
}

// currentTargetText reads what the target region contains right now.
func (e *Editor) currentTargetText(t *transformTarget) string {
	if t.selection != nil {
		return e.rangeText(t.selection.Start, t.selection.End)
	}
	return e.surf.Model().Flatten()
}
