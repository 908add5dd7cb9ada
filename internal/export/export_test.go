package export

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"txt", FormatText, false},
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteTextLineBoundaries(t *testing.T) {
	var b strings.Builder
	fragments := []string{"one", "<b>two</b>", "", "three"}

	if err := Write(&b, FormatText, fragments); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := b.String(); got != "one\ntwo\n\nthree\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var b strings.Builder
	fragments := []string{"a <b>bold</b> and <i>italic</i> line"}

	if err := Write(&b, FormatMarkdown, fragments); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := b.String(); got != "a **bold** and *italic* line\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteMarkdownNested(t *testing.T) {
	var b strings.Builder

	if err := Write(&b, FormatMarkdown, []string{"<b><i>both</i></b>"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := b.String(); got != "***both***\n" {
		t.Errorf("got %q", got)
	}
}
