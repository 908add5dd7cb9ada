package editor

import (
	"strings"
	"time"

	"github.com/dshills/quill/internal/ai"
	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/engine/search"
	"github.com/dshills/quill/internal/engine/suggest"
	"github.com/dshills/quill/internal/engine/surface"
	"github.com/dshills/quill/internal/engine/wrap"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/mode"
	"github.com/dshills/quill/internal/script"
)

// pendingTimeout is how long the first key of a two-key sequence stays
// buffered before it expires.
const pendingTimeout = 750 * time.Millisecond

// Hooks are the external collaborators the interpreter fires into. All
// are optional; a nil hook turns the command into a reported error or a
// no-op as documented per command.
type Hooks struct {
	// Save persists the markup-bearing serialized content.
	Save func(content string) error

	// Export receives the document fragments for external conversion.
	Export func(format, path string) error

	// Quit ends the editing session.
	Quit func()

	// Transform fires an AI request asynchronously. The response
	// re-enters through DeliverSuggestion or DeliverTransformError.
	Transform func(req ai.Request)

	// Notify surfaces a transient informational message.
	Notify func(msg string)
}

// transformTarget records what an in-flight AI request will rewrite, so
// the response can validate it still applies.
type transformTarget struct {
	selection *mode.Selection
	text      string
}

// Editor is one editing session's interpreter state.
type Editor struct {
	surf     *surface.Surface
	modes    *mode.Manager
	searcher *search.Engine
	reviewer *suggest.Reviewer
	board    *clipboard.Board
	hooks    Hooks
	meter    ai.Meter
	custom   map[string]script.Command

	width int

	// selection is the active highlight range, if any.
	selection *mode.Selection
	// selAnchor is the fixed end of the selection being extended.
	selAnchor int

	// savedCursor restores the cursor when command mode cancels.
	savedCursor int

	// pending is the buffered first key of a two-key sequence.
	pending   rune
	pendingAt time.Time

	// desiredCol preserves the column across vertical movement.
	desiredCol int

	// inflight is the target of an outstanding AI request, nil if none.
	inflight *transformTarget

	now func() time.Time
}

// Option configures an Editor.
type Option func(*Editor)

// WithWidth sets the wrap width.
func WithWidth(w int) Option {
	return func(e *Editor) {
		if w >= 1 {
			e.width = w
		}
	}
}

// WithMeter installs the AI credit meter.
func WithMeter(m ai.Meter) Option {
	return func(e *Editor) { e.meter = m }
}

// WithCustomCommands installs user-defined transform commands.
func WithCustomCommands(cmds map[string]script.Command) Option {
	return func(e *Editor) { e.custom = cmds }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// New creates an interpreter over initial markup-bearing content. The
// content is wrapped to width before the session starts.
func New(content string, hooks Hooks, opts ...Option) *Editor {
	e := &Editor{
		modes:    mode.NewManager(),
		searcher: search.New(),
		reviewer: suggest.NewReviewer(),
		board:    clipboard.New(),
		hooks:    hooks,
		meter:    ai.StaticMeter(ai.DefaultAllowance),
		width:    wrap.DefaultWidth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.surf = surface.New(wrap.Wrap(content, e.width))

	e.modes.Register(mode.NewNormalMode())
	e.modes.Register(mode.NewInsertMode())
	e.modes.Register(mode.NewCommandMode())
	// The registry only holds known modes; this cannot fail.
	_ = e.modes.SetInitialMode(mode.Normal)
	return e
}

// Surface exposes the document surface for rendering.
func (e *Editor) Surface() *surface.Surface {
	return e.surf
}

// Mode returns the active mode name.
func (e *Editor) Mode() string {
	return e.modes.CurrentName()
}

// ModeDisplay returns the status-line label for the active mode.
func (e *Editor) ModeDisplay() string {
	if m := e.modes.Current(); m != nil {
		return m.DisplayName()
	}
	return ""
}

// CommandBuffer returns the prefix and typed input while command mode
// is active.
func (e *Editor) CommandBuffer() (prefix rune, buffer string, active bool) {
	cm, ok := e.modes.Current().(*mode.CommandMode)
	if !ok {
		return 0, "", false
	}
	return cm.Prefix(), cm.Buffer(), true
}

// Selection returns the active selection, or nil.
func (e *Editor) Selection() *mode.Selection {
	return e.selection
}

// Content returns the markup-bearing serialized form: fragments joined
// by newlines. This is what crosses the persistence boundary.
func (e *Editor) Content() string {
	return strings.Join(e.surf.Model().Fragments(), "\n")
}

// WordCount counts words in the flattened projection.
func (e *Editor) WordCount() int {
	return len(strings.Fields(e.surf.Model().Flatten()))
}

// HandleKey routes one keystroke through the active mode.
func (e *Editor) HandleKey(ev key.Event) error {
	switch e.modes.CurrentName() {
	case mode.Insert:
		return e.handleInsertKey(ev)
	case mode.Command:
		return e.handleCommandKey(ev)
	default:
		return e.handleNormalKey(ev)
	}
}

// HandlePaste inserts externally supplied text at the cursor, routed
// through the serializer like any other external content.
func (e *Editor) HandlePaste(text string) error {
	return e.insertAndReflow(text)
}

// notify surfaces a message if the hook is installed.
func (e *Editor) notify(msg string) {
	if e.hooks.Notify != nil {
		e.hooks.Notify(msg)
	}
}
