package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := NewFileStore()

	if _, err := s.Load(filepath.Join(t.TempDir(), "nope.quill")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadEnvelope(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "draft.quill")
	content := "first line\n<b>second</b> line"

	if err := s.Save(path, content); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	doc, err := s.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Content != content {
		t.Errorf("content = %q", doc.Content)
	}
	if doc.Title != "draft" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Error("timestamps not recorded")
	}
}

func TestSavePreservesCreatedAt(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "draft.quill")

	if err := s.Save(path, "v1"); err != nil {
		t.Fatal(err)
	}
	doc1, err := s.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(path, "v2"); err != nil {
		t.Fatal(err)
	}
	doc2, err := s.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !doc2.CreatedAt.Equal(doc1.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", doc1.CreatedAt, doc2.CreatedAt)
	}
	if doc2.Content != "v2" {
		t.Errorf("content = %q", doc2.Content)
	}
}

func TestEnvelopeIsValidJSON(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "draft.quill")

	if err := s.Save(path, "line with \"quotes\" and\nnewlines"); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Content, `"quotes"`) {
		t.Errorf("content mangled: %q", doc.Content)
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	s := NewFileStore()
	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "plain line one\nplain line two"

	if err := s.Save(path, content); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	doc, err := s.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Content != content {
		t.Errorf("content = %q", doc.Content)
	}
	if doc.Title != "notes" {
		t.Errorf("title = %q", doc.Title)
	}
}
