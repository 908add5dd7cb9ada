package ai

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Meter reports and consumes the user's AI credit balance. The
// interpreter refuses to dispatch a transform when Remaining is zero.
type Meter interface {
	Remaining() int
	Consume() error
}

// DefaultAllowance is the starting balance for a fresh meter file.
const DefaultAllowance = 100

// FileMeter persists the balance as a small JSON file in the user data
// directory.
type FileMeter struct {
	path      string
	remaining int
}

// OpenFileMeter loads the meter at path, creating it with the given
// allowance when absent.
func OpenFileMeter(path string, allowance int) (*FileMeter, error) {
	m := &FileMeter{path: path, remaining: allowance}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := m.persist(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("credits: %w", err)
	default:
		if v := gjson.GetBytes(data, "remaining"); v.Exists() {
			m.remaining = int(v.Int())
		}
	}
	return m, nil
}

// Remaining returns the current balance.
func (m *FileMeter) Remaining() int {
	return m.remaining
}

// Consume decrements the balance by one and persists it. Consuming at
// zero is refused.
func (m *FileMeter) Consume() error {
	if m.remaining <= 0 {
		return ErrInsufficientQuota
	}
	m.remaining--
	return m.persist()
}

func (m *FileMeter) persist() error {
	out, err := sjson.Set("{}", "remaining", m.remaining)
	if err != nil {
		return fmt.Errorf("credits: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("credits: %w", err)
	}
	if err := os.WriteFile(m.path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("credits: %w", err)
	}
	return nil
}

// StaticMeter is a fixed balance with no persistence, used in tests and
// when metering is disabled.
type StaticMeter int

// Remaining returns the fixed balance.
func (m StaticMeter) Remaining() int { return int(m) }

// Consume is a no-op for a static meter.
func (m StaticMeter) Consume() error { return nil }
