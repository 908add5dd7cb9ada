package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/ai"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine/suggest"
)

func TestLoggerLevels(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LogLevelInfo, &buf)

	log.Debug("hidden")
	log.Info("shown %d", 42)
	log.Error("bad")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug leaked: %q", out)
	}
	if !strings.Contains(out, "[INFO] quill: shown 42") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] quill: bad") {
		t.Fatalf("missing error line: %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf strings.Builder
	log := NewLogger(LogLevelInfo, &buf).WithField("doc", "a.quill")

	log.Info("saved")
	if !strings.Contains(buf.String(), "saved doc=a.quill") {
		t.Fatalf("field missing: %q", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"WARN":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"":        LogLevelInfo,
		"bogus":   LogLevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func newTestApp(t *testing.T, path string, transformer ai.Transformer) *Application {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen: %v", err)
	}
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.CommandsFile = filepath.Join(cfg.Paths.DataDir, "commands.lua")
	cfg.Editor.AutosaveSeconds = 1

	a, err := New(cfg, path, screen, transformer, ai.StaticMeter(5), NewLogger(LogLevelError, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func typeKeys(a *Application, s string) {
	for _, r := range s {
		a.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestSaveCommandWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	a := newTestApp(t, path, nil)

	typeKeys(a, "i")
	typeKeys(a, "hello")
	a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	typeKeys(a, ":w")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("saved %q", data)
	}
}

func TestQuitCommandClosesLoop(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "n.txt"), nil)

	typeKeys(a, ":q")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	select {
	case <-a.quitCh:
	default:
		t.Fatal("quit channel still open")
	}
}

func TestAutosaveAfterQuietPeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	a := newTestApp(t, path, nil)

	typeKeys(a, "i")
	typeKeys(a, "draft")

	// Not yet quiet long enough.
	a.maybeAutosave()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("autosaved too early")
	}

	a.lastEdit = time.Now().Add(-2 * time.Second)
	a.maybeAutosave()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "draft" {
		t.Fatalf("autosaved %q", data)
	}
}

func TestAutosaveSkipsCleanDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	a := newTestApp(t, path, nil)

	a.lastEdit = time.Now().Add(-time.Minute)
	a.maybeAutosave()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("autosaved an unchanged document")
	}
}

// echoTransformer returns a canned response.
type echoTransformer struct {
	reply string
}

func (e *echoTransformer) Transform(ctx context.Context, req ai.Request) (string, error) {
	return e.reply, nil
}

func TestTransformRoundTrip(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "n.txt"), &echoTransformer{reply: "improved text"})

	typeKeys(a, "i")
	typeKeys(a, "rough text")
	a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	typeKeys(a, ":rephrase")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	select {
	case res := <-a.results:
		a.handleResult(res)
	case <-time.After(5 * time.Second):
		t.Fatal("no transform result")
	}

	if a.ed.Review() == nil {
		t.Fatal("no review session opened")
	}

	// Accept everything through the review panel.
	a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone))
	if got := a.ed.Content(); got != "improved text" {
		t.Fatalf("Content() = %q", got)
	}
}

func TestBracketedPasteBuffersKeys(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "n.txt"), nil)

	typeKeys(a, "i")
	a.handleEvent(tcell.NewEventPaste(true))
	typeKeys(a, "pasted")
	a.handleEvent(tcell.NewEventPaste(false))

	if got := a.ed.Content(); got != "pasted" {
		t.Fatalf("Content() = %q", got)
	}
}

func TestNextActionableSkipsCommon(t *testing.T) {
	r := suggest.NewReviewer()
	sess, err := r.Propose("the cat sat", "the dog sat")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	idx := nextActionable(sess, len(sess.Chunks())-1)
	if sess.Chunks()[idx].Kind == suggest.Common {
		t.Fatalf("focused a common chunk at %d", idx)
	}
}
