package ai

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBuildPromptKinds(t *testing.T) {
	for _, kind := range []Kind{
		KindGrammar, KindSpelling, KindSummarize, KindRephrase,
		KindExpand, KindShrink, KindFactCheck,
	} {
		prompt, err := BuildPrompt(Request{Kind: kind, Text: "some text"})
		if err != nil {
			t.Errorf("%s: %v", kind, err)
		}
		if prompt == "" {
			t.Errorf("%s: empty prompt", kind)
		}
	}
}

func TestBuildPromptRewriteAsNeedsArg(t *testing.T) {
	if _, err := BuildPrompt(Request{Kind: KindRewriteAs, Text: "x"}); err == nil {
		t.Error("expected error without target style")
	}
	prompt, err := BuildPrompt(Request{Kind: KindRewriteAs, Text: "x", Arg: "Hemingway"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt == "" {
		t.Error("empty prompt")
	}
}

func TestBuildPromptUnknownKind(t *testing.T) {
	if _, err := BuildPrompt(Request{Kind: "translate", Text: "x"}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestBuildPromptEmptyText(t *testing.T) {
	if _, err := BuildPrompt(Request{Kind: KindGrammar}); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestNormalizeResponse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "fixed text", "fixed text", nil},
		{"trimmed", "  fixed  \n", "fixed", nil},
		{"sentinel", NoChangeSentinel, "", ErrNoChange},
		{"sentinel case", "no_changes_needed", "", ErrNoChange},
		{"empty", "   ", "", ErrNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeResponse(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	if !KindGrammar.Valid() {
		t.Error("grammar should be valid")
	}
	if Kind("translate").Valid() {
		t.Error("translate should not be valid")
	}
}

func TestFileMeter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credits.json")

	m, err := OpenFileMeter(path, 2)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if m.Remaining() != 2 {
		t.Fatalf("remaining = %d", m.Remaining())
	}

	if err := m.Consume(); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	// Balance survives a reload.
	m2, err := OpenFileMeter(path, 99)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if m2.Remaining() != 1 {
		t.Errorf("reloaded remaining = %d, want 1", m2.Remaining())
	}

	if err := m2.Consume(); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if err := m2.Consume(); !errors.Is(err, ErrInsufficientQuota) {
		t.Errorf("expected ErrInsufficientQuota, got %v", err)
	}
}
