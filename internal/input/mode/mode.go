package mode

// Mode name constants.
const (
	Normal  = "normal"
	Insert  = "insert"
	Command = "command"
)

// Selection is a flattened-offset range captured when entering command
// mode with an active selection.
type Selection struct {
	Start int
	End   int
}

// Context carries information across a mode transition.
type Context struct {
	// PreviousMode is the mode being left (set for Enter).
	PreviousMode string

	// NextMode is the mode being entered (set for Exit).
	NextMode string

	// Prefix is the character that opened command mode (':', '/', '?').
	Prefix rune

	// Selection is the captured operand selection, if any.
	Selection *Selection
}

// Mode defines one editor mode.
type Mode interface {
	// Name returns the unique mode identifier.
	Name() string

	// DisplayName returns the status-line label.
	DisplayName() string

	// Enter is called when this mode becomes active.
	Enter(ctx *Context) error

	// Exit is called when this mode is left.
	Exit(ctx *Context) error
}
