package mode

import "testing"

func newManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewInsertMode())
	m.Register(NewCommandMode())
	if err := m.SetInitialMode(Normal); err != nil {
		t.Fatalf("set initial mode: %v", err)
	}
	return m
}

func TestInitialMode(t *testing.T) {
	m := newManager(t)

	if !m.IsMode(Normal) {
		t.Errorf("expected normal mode, got %s", m.CurrentName())
	}
}

func TestSwitch(t *testing.T) {
	m := newManager(t)

	if err := m.Switch(Insert, nil); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if !m.IsMode(Insert) {
		t.Errorf("expected insert mode, got %s", m.CurrentName())
	}
}

func TestPreviousTracksLastMode(t *testing.T) {
	m := newManager(t)

	if got := m.PreviousName(); got != "" {
		t.Errorf("PreviousName() = %q before any switch", got)
	}

	if err := m.Switch(Command, nil); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if got := m.PreviousName(); got != Normal {
		t.Errorf("PreviousName() = %q, want %s", got, Normal)
	}
	if prev := m.Previous(); prev == nil || prev.Name() != Normal {
		t.Errorf("Previous() = %v", prev)
	}

	if err := m.Switch(Normal, nil); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if got := m.PreviousName(); got != Command {
		t.Errorf("PreviousName() = %q, want %s", got, Command)
	}
}

func TestSwitchUnknown(t *testing.T) {
	m := newManager(t)

	if err := m.Switch("visual", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !m.IsMode(Normal) {
		t.Error("failed switch changed the mode")
	}
}

func TestOnChange(t *testing.T) {
	m := newManager(t)

	var gotFrom, gotTo string
	m.OnChange(func(from, to Mode) {
		gotFrom, gotTo = from.Name(), to.Name()
	})

	if err := m.Switch(Command, &Context{Prefix: ':'}); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if gotFrom != Normal || gotTo != Command {
		t.Errorf("callback saw %s -> %s", gotFrom, gotTo)
	}
}

func TestCommandModeCapturesContext(t *testing.T) {
	m := newManager(t)
	sel := &Selection{Start: 2, End: 9}

	if err := m.Switch(Command, &Context{Prefix: '/', Selection: sel}); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	cm := m.Current().(*CommandMode)
	if cm.Prefix() != '/' {
		t.Errorf("prefix = %q", cm.Prefix())
	}
	if cm.Selection() == nil || *cm.Selection() != *sel {
		t.Errorf("selection = %+v", cm.Selection())
	}
}

func TestCommandModeBuffer(t *testing.T) {
	cm := NewCommandMode()
	if err := cm.Enter(&Context{Prefix: ':'}); err != nil {
		t.Fatal(err)
	}

	for _, r := range "wq" {
		cm.Append(r)
	}
	if cm.Buffer() != "wq" {
		t.Errorf("buffer = %q", cm.Buffer())
	}

	if !cm.Backspace() {
		t.Error("backspace on non-empty buffer should succeed")
	}
	if cm.Buffer() != "w" {
		t.Errorf("buffer = %q", cm.Buffer())
	}
	cm.Backspace()
	if cm.Backspace() {
		t.Error("backspace on empty buffer should report false")
	}
}
