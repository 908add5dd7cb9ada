package mode

import (
	"fmt"
	"sync"
)

// ChangeCallback is notified after every completed mode switch.
type ChangeCallback func(from, to Mode)

// Manager owns the registered modes and coordinates transitions.
type Manager struct {
	mu        sync.RWMutex
	modes     map[string]Mode
	current   Mode
	previous  Mode
	callbacks []ChangeCallback
}

// NewManager creates an empty mode manager.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// Register adds a mode, replacing any mode with the same name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Get returns a registered mode, or nil.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the active mode, or nil before initialization.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the active mode's name, or "".
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Previous returns the mode that was active before the last switch, or
// nil.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// PreviousName returns the prior mode's name, or "".
func (m *Manager) PreviousName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.previous == nil {
		return ""
	}
	return m.previous.Name()
}

// IsMode reports whether the named mode is active.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// Switch transitions to the named mode, calling Exit on the old mode and
// Enter on the new one with the given context.
func (m *Manager) Switch(name string, ctx *Context) error {
	m.mu.Lock()

	next, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown mode: %s", name)
	}
	if ctx == nil {
		ctx = &Context{}
	}

	old := m.current
	if old != nil {
		ctx.NextMode = name
		if err := old.Exit(ctx); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", old.Name(), err)
		}
		ctx.PreviousMode = old.Name()
	}
	ctx.NextMode = ""

	if err := next.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}

	m.previous = old
	m.current = next
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(old, next)
	}
	return nil
}

// SetInitialMode installs the starting mode. It calls Enter but no Exit.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	m.current = mode
	return mode.Enter(&Context{})
}

// OnChange registers a callback notified after every switch.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
