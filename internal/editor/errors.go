package editor

import "errors"

// Errors reported by the interpreter. All are transient: the mode, line
// model and surface stay consistent and the user can retry.
var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrNothingToPaste = errors.New("nothing to paste")
	ErrNoTransform    = errors.New("no transform collaborator configured")
	ErrStaleTarget    = errors.New("transform target changed while the request was in flight")
)
