package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/ai"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/suggest"
	"github.com/dshills/quill/internal/export"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/script"
	"github.com/dshills/quill/internal/store"
	"github.com/dshills/quill/internal/ui"
)

// transformTimeout bounds one AI request.
const transformTimeout = 60 * time.Second

// result is one asynchronous transform outcome re-entering the loop.
type result struct {
	text string
	err  error
}

// Application wires the editor, storage, AI provider and screen into a
// single-threaded event loop. All editor state is touched only from
// Run's goroutine; asynchronous work re-enters through channels.
type Application struct {
	cfg    config.Config
	log    *Logger
	screen tcell.Screen
	ed     *editor.Editor
	view   *ui.View
	docs   store.Store
	meter  ai.Meter

	transformer ai.Transformer

	path      string
	lastSaved string
	lastEdit  time.Time

	results  chan result
	quitCh   chan struct{}
	quitOnce sync.Once

	pasting     bool
	pasteBuffer strings.Builder
}

// New loads the document at path and assembles a ready-to-run
// application. A missing document starts an empty session that will be
// created on first save.
func New(cfg config.Config, path string, screen tcell.Screen, transformer ai.Transformer, meter ai.Meter, log *Logger) (*Application, error) {
	docs := store.NewFileStore()
	doc, err := docs.Load(path)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	commands, err := script.Load(cfg.Paths.CommandsFile)
	if err != nil {
		log.Warn("custom commands disabled: %v", err)
		commands = map[string]script.Command{}
	}

	a := &Application{
		cfg:         cfg,
		log:         log,
		screen:      screen,
		view:        ui.NewView(),
		docs:        docs,
		meter:       meter,
		transformer: transformer,
		path:        path,
		lastSaved:   doc.Content,
		results:     make(chan result, 1),
		quitCh:      make(chan struct{}),
	}

	hooks := editor.Hooks{
		Save:   a.save,
		Export: a.export,
		Quit:   a.requestQuit,
		Notify: func(msg string) { a.view.Message = msg },
	}
	if transformer != nil {
		hooks.Transform = a.dispatch
	}

	a.ed = editor.New(doc.Content, hooks,
		editor.WithWidth(cfg.Editor.Width),
		editor.WithMeter(meter),
		editor.WithCustomCommands(commands),
	)
	if meter != nil {
		a.view.Credits = meter.Remaining()
	}
	return a, nil
}

// Editor exposes the interpreter, mainly for tests.
func (a *Application) Editor() *editor.Editor {
	return a.ed
}

// Run drives the event loop until quit.
func (a *Application) Run() error {
	a.screen.EnablePaste()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quitCh:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	a.view.Draw(a.screen, a.ed)
	for {
		select {
		case <-a.quitCh:
			return nil
		case ev := <-events:
			a.handleEvent(ev)
		case res := <-a.results:
			a.handleResult(res)
		case <-ticker.C:
			a.maybeAutosave()
		}
		select {
		case <-a.quitCh:
			return nil
		default:
		}
		a.view.Draw(a.screen, a.ed)
	}
}

func (a *Application) requestQuit() {
	a.quitOnce.Do(func() { close(a.quitCh) })
}

func (a *Application) handleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventPaste:
		a.handlePasteBoundary(tev)
	case *tcell.EventKey:
		a.handleKey(tev)
	}
}

// handlePasteBoundary collects bracketed-paste content: the runes
// between the start and end markers are buffered and inserted in one
// operation instead of being interpreted as keystrokes.
func (a *Application) handlePasteBoundary(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.pasteBuffer.Reset()
		return
	}
	a.pasting = false
	text := a.pasteBuffer.String()
	a.pasteBuffer.Reset()
	if text == "" {
		return
	}
	if err := a.ed.HandlePaste(text); err != nil {
		a.view.Message = err.Error()
	}
	a.markEdit()
}

func (a *Application) handleKey(tev *tcell.EventKey) {
	if a.pasting {
		switch tev.Key() {
		case tcell.KeyRune:
			a.pasteBuffer.WriteRune(tev.Rune())
		case tcell.KeyEnter:
			a.pasteBuffer.WriteByte('\n')
		case tcell.KeyTab:
			a.pasteBuffer.WriteByte('\t')
		}
		return
	}

	a.view.Message = ""
	ev := key.FromTcell(tev)

	if a.ed.Review() != nil {
		a.handleReviewKey(ev)
		return
	}
	if err := a.ed.HandleKey(ev); err != nil {
		a.view.Message = err.Error()
		a.log.Debug("key rejected: %v", err)
	}
	a.markEdit()
}

// handleReviewKey drives the suggestion panel while a review is open.
func (a *Application) handleReviewKey(ev key.Event) {
	sess := a.ed.Review()

	var err error
	switch {
	case ev.Code == key.CodeTab:
		a.view.ReviewIndex = nextActionable(sess, a.view.ReviewIndex)
	case ev.Code == key.CodeEscape:
		a.ed.CloseReview()
	case ev.IsRune() && ev.Rune == 'a':
		err = a.ed.AcceptChunk(a.view.ReviewIndex)
		a.view.ReviewIndex = nextActionable(sess, a.view.ReviewIndex)
	case ev.IsRune() && ev.Rune == 'r':
		err = a.ed.RejectChunk(a.view.ReviewIndex)
		a.view.ReviewIndex = nextActionable(sess, a.view.ReviewIndex)
	case ev.IsRune() && ev.Rune == 'A':
		err = a.ed.AcceptAll()
	case ev.IsRune() && ev.Rune == 'R':
		err = a.ed.RejectAll()
	}
	if err != nil {
		a.view.Message = err.Error()
	}
	if a.ed.Review() == nil {
		a.view.ReviewIndex = 0
		a.markEdit()
	}
}

// nextActionable returns the next added or removed chunk index after
// from, wrapping around; from when none exists.
func nextActionable(sess *suggest.Session, from int) int {
	chunks := sess.Chunks()
	for i := 1; i <= len(chunks); i++ {
		idx := (from + i) % len(chunks)
		if chunks[idx].Kind != suggest.Common && chunks[idx].State() == suggest.Pending {
			return idx
		}
	}
	return from
}

// dispatch runs one AI request off the loop goroutine. The outcome
// re-enters through the results channel.
func (a *Application) dispatch(req ai.Request) {
	a.view.Message = "thinking..."
	a.log.Info("transform dispatched kind=%s", req.Kind)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), transformTimeout)
		defer cancel()
		text, err := a.transformer.Transform(ctx, req)
		select {
		case a.results <- result{text: text, err: err}:
		case <-a.quitCh:
		}
	}()
}

func (a *Application) handleResult(res result) {
	if res.err != nil {
		a.log.Warn("transform failed: %v", res.err)
		a.ed.DeliverTransformError(res.err)
		return
	}
	if err := a.ed.DeliverSuggestion(res.text); err != nil {
		a.view.Message = err.Error()
		return
	}
	if sess := a.ed.Review(); sess != nil {
		a.view.ReviewIndex = nextActionable(sess, len(sess.Chunks())-1)
		a.view.Message = "suggestion ready"
	}
	if a.meter != nil {
		a.view.Credits = a.meter.Remaining()
	}
}

func (a *Application) markEdit() {
	a.lastEdit = time.Now()
}

// maybeAutosave persists the document after the configured quiet period
// with unsaved changes.
func (a *Application) maybeAutosave() {
	if !a.cfg.Editor.Autosave {
		return
	}
	content := a.ed.Content()
	if content == a.lastSaved {
		return
	}
	quiet := time.Duration(a.cfg.Editor.AutosaveSeconds) * time.Second
	if time.Since(a.lastEdit) < quiet {
		return
	}
	if err := a.save(content); err != nil {
		a.view.Message = err.Error()
		a.log.Error("autosave failed: %v", err)
		return
	}
	a.view.Message = "autosaved"
}

func (a *Application) save(content string) error {
	if err := a.docs.Save(a.path, content); err != nil {
		return err
	}
	a.lastSaved = content
	a.log.Info("saved %s (%d bytes)", a.path, len(content))
	return nil
}

func (a *Application) export(format, path string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if path == "" {
		path = strings.TrimSuffix(a.path, ".quill") + "." + format
	}
	fragments := a.ed.Surface().Model().Fragments()
	if err := export.WriteFile(path, f, fragments); err != nil {
		return err
	}
	a.view.Message = "exported " + path
	return nil
}
