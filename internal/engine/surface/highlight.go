package surface

// The highlight is an overlay, not content. HighlightRange only records
// the flattened range and the renderer resolves it on top of the
// document's own markup, so literal <mark> spans the document already
// contains survive a highlight-and-clear cycle untouched.

// highlightSpan is a half-open flattened range [start, end).
type highlightSpan struct {
	start int
	end   int
}

// HighlightRange marks the flattened range [start, end) as the active
// highlight. Empty ranges are no-ops; the document is never modified.
func (s *Surface) HighlightRange(start, end int) error {
	if start < 0 || start > end || end > s.model.Len() {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}
	s.highlight = &highlightSpan{start: start, end: end}
	return nil
}

// Highlight reports the active highlight range clamped to the current
// document, or ok=false when no highlight is set or the document has
// shrunk past it.
func (s *Surface) Highlight() (start, end int, ok bool) {
	if s.highlight == nil {
		return 0, 0, false
	}
	start = s.model.ClampOffset(s.highlight.start)
	end = s.model.ClampOffset(s.highlight.end)
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// ClearHighlight drops the highlight overlay.
func (s *Surface) ClearHighlight() {
	s.highlight = nil
}
