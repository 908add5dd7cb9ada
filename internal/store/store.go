// Package store is the persistence collaborator: it loads and saves
// document content across the editor boundary. Content crossing this
// boundary is the markup-bearing serialized form, one fragment per
// line.
//
// Two on-disk forms are supported. A .quill file is a small JSON
// envelope carrying the content plus metadata; anything else is treated
// as a plain text file whose lines load as markup-free fragments.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotFound is returned when loading a document that does not exist.
var ErrNotFound = errors.New("document not found")

// Document is the persisted form of an editing session's content.
type Document struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store loads and saves documents by id. The id is an opaque handle;
// for the file store it is the file path.
type Store interface {
	Load(id string) (Document, error)
	Save(id, content string) error
}

// FileStore persists documents to the local filesystem.
type FileStore struct{}

// NewFileStore creates a file-backed store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads the document at path. A missing file yields ErrNotFound;
// callers treat that as a fresh document.
func (s *FileStore) Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}

	if !isEnvelope(path) {
		return Document{
			ID:      path,
			Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Content: strings.TrimRight(string(data), "\n"),
		}, nil
	}

	doc := Document{ID: path}
	parsed := gjson.ParseBytes(data)
	doc.Title = parsed.Get("title").String()
	doc.Content = parsed.Get("content").String()
	if v := parsed.Get("created_at"); v.Exists() {
		doc.CreatedAt, _ = time.Parse(time.RFC3339, v.String())
	}
	if v := parsed.Get("updated_at"); v.Exists() {
		doc.UpdatedAt, _ = time.Parse(time.RFC3339, v.String())
	}
	return doc, nil
}

// Save writes content to path, preserving envelope metadata when the
// target is a .quill document.
func (s *FileStore) Save(path, content string) error {
	if !isEnvelope(path) {
		return writeFile(path, content+"\n")
	}

	out := "{}"
	if data, err := os.ReadFile(path); err == nil {
		out = string(data)
	}

	var err error
	if !gjson.Get(out, "created_at").Exists() {
		if out, err = sjson.Set(out, "created_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if !gjson.Get(out, "title").Exists() {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if out, err = sjson.Set(out, "title", title); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if out, err = sjson.Set(out, "content", content); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if out, err = sjson.Set(out, "updated_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return writeFile(path, out)
}

func isEnvelope(path string) bool {
	return filepath.Ext(path) == ".quill"
}

// writeFile writes atomically via a sibling temp file.
func writeFile(path, data string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".quill-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
