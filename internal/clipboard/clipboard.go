// Package clipboard provides the single-slot yank register backed by
// the platform clipboard. The register is the authority: platform
// failures degrade to it silently, so yank and paste always work.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is reported when the platform clipboard cannot be
// reached and the internal register has nothing to fall back on.
var ErrUnavailable = errors.New("clipboard unavailable")

// Register is the process-lifetime internal clipboard slot. Each yank
// or delete overwrites it; paste reads it non-destructively.
type Register struct {
	text string
	set  bool
}

// Write overwrites the register.
func (r *Register) Write(text string) {
	r.text = text
	r.set = true
}

// Read returns the register content. The second result is false when
// nothing has been yanked yet.
func (r *Register) Read() (string, bool) {
	return r.text, r.set
}

// Board couples the internal register with the platform clipboard.
type Board struct {
	reg Register

	// writeAll and readAll are swappable for tests.
	writeAll func(string) error
	readAll  func() (string, error)
}

// New creates a board using the platform clipboard.
func New() *Board {
	return &Board{
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// NewDetached creates a board with no platform clipboard behind it,
// for tests and headless environments.
func NewDetached() *Board {
	return &Board{
		writeAll: func(string) error { return ErrUnavailable },
		readAll:  func() (string, error) { return "", ErrUnavailable },
	}
}

// Write stores text in the register and mirrors it to the platform
// clipboard. A platform failure is swallowed: the register always wins.
func (b *Board) Write(text string) {
	b.reg.Write(text)
	_ = b.writeAll(text)
}

// Read returns the register content, falling back to the platform
// clipboard when nothing has been yanked this session.
func (b *Board) Read() (string, error) {
	if text, ok := b.reg.Read(); ok {
		return text, nil
	}
	text, err := b.readAll()
	if err != nil {
		return "", ErrUnavailable
	}
	return text, nil
}
