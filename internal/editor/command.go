package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/ai"
	"github.com/dshills/quill/internal/engine/search"
	"github.com/dshills/quill/internal/engine/suggest"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/mode"
)

// handleCommandKey interprets a keystroke while command mode is active.
func (e *Editor) handleCommandKey(ev key.Event) error {
	cm, ok := e.modes.Current().(*mode.CommandMode)
	if !ok {
		return e.modes.Switch(mode.Normal, nil)
	}

	switch ev.Code {
	case key.CodeEscape:
		return e.cancelCommandMode()
	case key.CodeBackspace:
		if !cm.Backspace() {
			// Erasing past the prefix cancels the command.
			return e.cancelCommandMode()
		}
		return nil
	case key.CodeEnter:
		return e.executeCommand(cm)
	}

	if ev.IsRune() {
		cm.Append(ev.Rune)
	}
	return nil
}

// executeCommand runs the buffered command and returns to normal mode.
// A dispatched transform keeps its target highlighted until the
// suggestion resolves; every other outcome drops the highlight.
func (e *Editor) executeCommand(cm *mode.CommandMode) error {
	prefix := cm.Prefix()
	buffer := cm.Buffer()
	sel := cm.Selection()

	if prefix == '/' || prefix == '?' {
		// Search ignores the selection; drop the highlight before the
		// cursor jumps so the jump is not overridden.
		if cm.Selection() != nil {
			e.surf.ClearHighlight()
		}
		e.clearSelection()
		if err := e.modes.Switch(mode.Normal, nil); err != nil {
			return err
		}
		return e.runSearch(prefix, buffer)
	}

	dispatched, err := e.runColonCommand(buffer, sel)
	e.finishCommand(cm, dispatched && err == nil)
	return err
}

// finishCommand leaves command mode. keepHighlight preserves the
// selection highlight for an in-flight transform target.
func (e *Editor) finishCommand(cm *mode.CommandMode, keepHighlight bool) {
	if cm.Selection() != nil && !keepHighlight {
		e.surf.ClearHighlight()
		e.surf.SetCursorOffset(cm.Selection().End)
	}
	e.clearSelection()
	_ = e.modes.Switch(e.returnMode(), nil)
}

// returnMode is where leaving command mode lands: the mode that was
// active when it was entered, normal as a fallback.
func (e *Editor) returnMode() string {
	if name := e.modes.PreviousName(); name != "" {
		return name
	}
	return mode.Normal
}

// runSearch executes a '/' or '?' search, or repeats the remembered
// pattern when the buffer is empty.
func (e *Editor) runSearch(prefix rune, pattern string) error {
	flat := e.surf.Model().Flatten()
	cursor := e.surf.Cursor().Offset

	var (
		off int
		err error
	)
	dir := search.Forward
	if prefix == '?' {
		dir = search.Backward
	}
	if pattern == "" {
		if dir == search.Forward {
			off, err = e.searcher.Next(flat, cursor)
		} else {
			off, err = e.searcher.Prev(flat, cursor)
		}
	} else {
		off, err = e.searcher.Search(flat, pattern, cursor, dir)
	}
	if err != nil {
		return err
	}
	e.surf.SetCursorOffset(off)
	e.desiredCol = e.surf.Cursor().Pos.Col
	return nil
}

// runColonCommand executes one ':' command. It reports whether a
// transform was dispatched asynchronously.
func (e *Editor) runColonCommand(buffer string, sel *mode.Selection) (bool, error) {
	buffer = strings.TrimSpace(buffer)
	if buffer == "" {
		return false, nil
	}

	if strings.HasPrefix(buffer, "%s/") || strings.HasPrefix(buffer, "s/") {
		n, err := e.runSubstitution(buffer)
		if err != nil {
			return false, err
		}
		e.notify(fmt.Sprintf("%d substitution(s)", n))
		return false, nil
	}

	name, arg, _ := strings.Cut(buffer, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q":
		if e.hooks.Quit != nil {
			e.hooks.Quit()
		}
		return false, nil
	case "w":
		return false, e.save()
	case "wq":
		if err := e.save(); err != nil {
			return false, err
		}
		if e.hooks.Quit != nil {
			e.hooks.Quit()
		}
		return false, nil
	case "export":
		return false, e.export(arg)
	}

	if kind := ai.Kind(name); kind.Valid() && kind != ai.KindCustom {
		if kind == ai.KindRewriteAs && arg == "" {
			return false, fmt.Errorf("%w: rewriteas needs a target style", ErrInvalidCommand)
		}
		err := e.dispatchTransform(ai.Request{Kind: kind, Arg: arg}, sel)
		return err == nil, err
	}

	if cmd, ok := e.custom[name]; ok {
		err := e.dispatchTransform(ai.Request{Kind: ai.KindCustom, Prompt: cmd.Prompt}, sel)
		return err == nil, err
	}

	return false, fmt.Errorf("%w: %q", ErrInvalidCommand, name)
}

func (e *Editor) save() error {
	if e.hooks.Save == nil {
		return nil
	}
	return e.hooks.Save(e.Content())
}

// export parses ":export [format] [path]" and fires the export hook.
func (e *Editor) export(arg string) error {
	if e.hooks.Export == nil {
		return nil
	}
	format, path, _ := strings.Cut(arg, " ")
	if format == "" {
		format = "txt"
	}
	return e.hooks.Export(format, strings.TrimSpace(path))
}

// dispatchTransform fires an asynchronous AI request over the captured
// selection, or the whole flattened document when none was captured.
func (e *Editor) dispatchTransform(req ai.Request, sel *mode.Selection) error {
	if e.hooks.Transform == nil {
		return ErrNoTransform
	}
	if e.reviewer.Active() != nil {
		return suggest.ErrReviewActive
	}
	if e.meter != nil && e.meter.Remaining() <= 0 {
		return ai.ErrInsufficientQuota
	}

	if sel != nil {
		req.Text = e.rangeText(sel.Start, sel.End)
	} else {
		req.Text = e.surf.Model().Flatten()
	}
	if req.Text == "" {
		return ai.ErrEmptyText
	}

	e.inflight = &transformTarget{selection: sel, text: req.Text}
	e.hooks.Transform(req)
	return nil
}
