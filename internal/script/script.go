// Package script loads user-defined transform commands from a Lua file.
//
// The file runs in a sandboxed interpreter with only the base, table
// and string libraries available; filesystem and process access are
// stripped. Each call to quill.command(name, prompt) registers an extra
// colon command that dispatches an AI transform with the given prompt.
package script

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	lua "github.com/yuin/gopher-lua"
)

// Errors returned while loading a command file.
var (
	ErrBadName = errors.New("command name must be short lowercase letters")
)

// Command is one user-defined transform command.
type Command struct {
	Name   string
	Prompt string
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]{0,23}$`)

// Load executes the Lua file at path and returns the registered
// commands keyed by name. A missing file is not an error: the feature
// is optional.
func Load(path string) (map[string]Command, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]Command{}, nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSandboxedLibs(L)

	commands := make(map[string]Command)
	var loadErr error

	mod := L.NewTable()
	L.SetField(mod, "command", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		prompt := L.CheckString(2)
		if !namePattern.MatchString(name) {
			loadErr = fmt.Errorf("%w: %q", ErrBadName, name)
			return 0
		}
		commands[name] = Command{Name: name, Prompt: prompt}
		return 0
	}))
	L.SetGlobal("quill", mod)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if loadErr != nil {
		return nil, loadErr
	}
	return commands, nil
}

// openSandboxedLibs opens only the safe standard libraries and strips
// the escape hatches the base library carries.
func openSandboxedLibs(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "print"} {
		L.SetGlobal(name, lua.LNil)
	}
}
