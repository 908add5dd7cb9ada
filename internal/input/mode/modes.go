package mode

// NormalMode is the initial mode. Keys are commands; content mutation
// happens only through explicit operations.
type NormalMode struct{}

// NewNormalMode creates a normal mode instance.
func NewNormalMode() *NormalMode { return &NormalMode{} }

func (m *NormalMode) Name() string        { return Normal }
func (m *NormalMode) DisplayName() string { return "NORMAL" }

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) error { return nil }

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) error { return nil }

// InsertMode allows free typing at the cursor.
type InsertMode struct{}

// NewInsertMode creates an insert mode instance.
func NewInsertMode() *InsertMode { return &InsertMode{} }

func (m *InsertMode) Name() string        { return Insert }
func (m *InsertMode) DisplayName() string { return "INSERT" }

// Enter is called when entering insert mode.
func (m *InsertMode) Enter(ctx *Context) error { return nil }

// Exit is called when leaving insert mode.
func (m *InsertMode) Exit(ctx *Context) error { return nil }

// CommandMode captures a side-channel input buffer opened by ':', '/'
// or '?'. The triggering character becomes the command's prefix, and a
// selection active at the transition is captured as the implicit
// operand.
type CommandMode struct {
	buffer    []rune
	prefix    rune
	selection *Selection
}

// NewCommandMode creates a command mode instance.
func NewCommandMode() *CommandMode {
	return &CommandMode{buffer: make([]rune, 0, 64)}
}

func (m *CommandMode) Name() string        { return Command }
func (m *CommandMode) DisplayName() string { return "COMMAND" }

// Enter resets the input buffer and records the prefix and captured
// selection from the transition context.
func (m *CommandMode) Enter(ctx *Context) error {
	m.buffer = m.buffer[:0]
	m.prefix = ctx.Prefix
	m.selection = ctx.Selection
	return nil
}

// Exit is called when leaving command mode.
func (m *CommandMode) Exit(ctx *Context) error { return nil }

// Append adds a character to the input buffer.
func (m *CommandMode) Append(r rune) {
	m.buffer = append(m.buffer, r)
}

// Backspace removes the last buffered character. It reports false when
// the buffer is already empty, which cancels command mode.
func (m *CommandMode) Backspace() bool {
	if len(m.buffer) == 0 {
		return false
	}
	m.buffer = m.buffer[:len(m.buffer)-1]
	return true
}

// Buffer returns the typed input without the prefix.
func (m *CommandMode) Buffer() string { return string(m.buffer) }

// Prefix returns the character that opened command mode.
func (m *CommandMode) Prefix() rune { return m.prefix }

// Selection returns the captured operand selection, or nil.
func (m *CommandMode) Selection() *Selection { return m.selection }
