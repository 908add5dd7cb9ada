package surface

import (
	"errors"
	"testing"

	"github.com/dshills/quill/internal/engine/line"
)

func TestNewEmpty(t *testing.T) {
	s := New(nil)

	if s.Model().LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", s.Model().LineCount())
	}
	if s.Cursor().Offset != 0 {
		t.Errorf("expected cursor at 0, got %d", s.Cursor().Offset)
	}
}

func TestInsertText(t *testing.T) {
	s := New([]string{"hello world"})

	if err := s.InsertText(5, ","); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := s.Model().PlainLine(0); got != "hello, world" {
		t.Errorf("got %q", got)
	}
	if s.Cursor().Offset != 6 {
		t.Errorf("cursor at %d, want 6", s.Cursor().Offset)
	}
}

func TestInsertTextInheritsStyle(t *testing.T) {
	s := New([]string{"<b>bold</b>"})

	if err := s.InsertText(2, "XX"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := s.Model().Fragments()[0]; got != "<b>boXXld</b>" {
		t.Errorf("got %q", got)
	}
}

func TestInsertTextMultiline(t *testing.T) {
	s := New([]string{"headtail"})

	if err := s.InsertText(4, "one\ntwo"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if s.Model().LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.Model().LineCount())
	}
	if got := s.Model().Flatten(); got != "headone\ntwotail" {
		t.Errorf("got %q", got)
	}
	if s.Cursor().Pos != (line.Position{Line: 1, Col: 3}) {
		t.Errorf("cursor at %+v", s.Cursor().Pos)
	}
}

func TestInsertTextOutOfRange(t *testing.T) {
	s := New([]string{"ab"})
	before := s.Model().Flatten()

	if err := s.InsertText(10, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Fatalf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if s.Model().Flatten() != before {
		t.Error("failed insert mutated content")
	}
}

func TestDeleteRangeWithinLine(t *testing.T) {
	s := New([]string{"hello world"})

	if err := s.DeleteRange(5, 11); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := s.Model().PlainLine(0); got != "hello" {
		t.Errorf("got %q", got)
	}
	if s.Cursor().Offset != 5 {
		t.Errorf("cursor at %d, want 5", s.Cursor().Offset)
	}
}

func TestDeleteRangeJoinsLines(t *testing.T) {
	s := New([]string{"first", "second"})

	// Delete from mid-first through mid-second, crossing the separator.
	if err := s.DeleteRange(3, 9); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if s.Model().LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", s.Model().LineCount())
	}
	if got := s.Model().PlainLine(0); got != "firond" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteRangeWholeDocument(t *testing.T) {
	s := New([]string{"one", "two"})

	if err := s.DeleteRange(0, s.Model().Len()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if s.Model().LineCount() != 1 || s.Model().PlainLine(0) != "" {
		t.Errorf("expected one empty line, got %q", s.Model().Fragments())
	}
}

func TestDeleteRangePreservesMarkup(t *testing.T) {
	s := New([]string{"aa <b>bold</b> zz"})

	if err := s.DeleteRange(0, 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := s.Model().Fragments()[0]; got != "<b>bold</b> zz" {
		t.Errorf("got %q", got)
	}
}

func TestDeleteLine(t *testing.T) {
	s := New([]string{"one", "two", "three"})

	if err := s.DeleteLine(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := s.Model().Flatten(); got != "one\nthree" {
		t.Errorf("got %q", got)
	}
	if s.Cursor().Pos != (line.Position{Line: 1, Col: 0}) {
		t.Errorf("cursor at %+v", s.Cursor().Pos)
	}
}

func TestDeleteLastLineClamps(t *testing.T) {
	s := New([]string{"one", "two"})

	if err := s.DeleteLine(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if s.Cursor().Pos != (line.Position{Line: 0, Col: 0}) {
		t.Errorf("cursor at %+v", s.Cursor().Pos)
	}
}

func TestDeleteOnlyLine(t *testing.T) {
	s := New([]string{"only"})

	if err := s.DeleteLine(0); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if s.Model().LineCount() != 1 {
		t.Fatalf("expected exactly one line, got %d", s.Model().LineCount())
	}
	if s.Model().PlainLine(0) != "" {
		t.Errorf("expected empty line, got %q", s.Model().PlainLine(0))
	}
}

func TestDeleteLineOutOfRange(t *testing.T) {
	s := New([]string{"only"})
	before := s.Model().Flatten()

	if err := s.DeleteLine(3); !errors.Is(err, ErrLineOutOfRange) {
		t.Fatalf("expected ErrLineOutOfRange, got %v", err)
	}
	if s.Model().Flatten() != before {
		t.Error("failed delete mutated content")
	}
}

func TestReplaceAll(t *testing.T) {
	s := New([]string{"old content"})
	s.SetCursorOffset(5)

	s.ReplaceAll([]string{"new", "content"})

	if got := s.Model().Flatten(); got != "new\ncontent" {
		t.Errorf("got %q", got)
	}
	if s.Cursor().Offset != 0 {
		t.Errorf("cursor at %d, want 0", s.Cursor().Offset)
	}
}

func TestHighlightIsOverlayOnly(t *testing.T) {
	s := New([]string{"plain <b>bold</b> tail", "second line"})
	before := s.Model().Fragments()

	if err := s.HighlightRange(3, 15); err != nil {
		t.Fatalf("highlight failed: %v", err)
	}
	for i, frag := range s.Model().Fragments() {
		if frag != before[i] {
			t.Errorf("line %d changed under highlight: %q != %q", i, frag, before[i])
		}
	}
	hs, he, ok := s.Highlight()
	if !ok || hs != 3 || he != 15 {
		t.Errorf("Highlight() = %d, %d, %v; want 3, 15, true", hs, he, ok)
	}

	s.ClearHighlight()
	if _, _, ok := s.Highlight(); ok {
		t.Error("highlight still active after clear")
	}
}

func TestHighlightKeepsExistingMarkSpans(t *testing.T) {
	s := New([]string{"<mark>note</mark> plain text"})

	if err := s.HighlightRange(6, 11); err != nil {
		t.Fatalf("highlight failed: %v", err)
	}
	s.ClearHighlight()

	if got := s.Model().Fragments()[0]; got != "<mark>note</mark> plain text" {
		t.Errorf("mark span lost: %q", got)
	}
}

func TestHighlightClampsAfterShrink(t *testing.T) {
	s := New([]string{"abcdef"})
	if err := s.HighlightRange(2, 6); err != nil {
		t.Fatalf("highlight failed: %v", err)
	}
	if err := s.DeleteRange(3, 6); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	hs, he, ok := s.Highlight()
	if !ok || hs != 2 || he != 3 {
		t.Errorf("Highlight() = %d, %d, %v after shrink; want 2, 3, true", hs, he, ok)
	}
}
