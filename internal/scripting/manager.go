package scripting

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed LState holding the loaded rules scripts and
// exposes hook dispatch.
//
// Manager is safe for concurrent CallHook; calls are serialized because an
// LState is single-threaded.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager with the sheet.* modules registered.
//
// Precondition: logger must be non-nil; instLimit <= 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	L := NewSandboxedState()
	RegisterModules(L)
	return &Manager{L: L, instLimit: instLimit, logger: logger}
}

// LoadFile executes the Lua file at path, defining its hooks.
//
// Postcondition: returns an error on read, syntax, runtime, or instruction-limit failure.
func (m *Manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := Limited(m.L, m.instLimit, func() error { return m.L.DoFile(path) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	return nil
}

// LoadString executes src as a chunk named name.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := Limited(m.L, m.instLimit, func() error { return m.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.L.GetGlobal(hook).Type() == lua.LTFunction
}

// CallHook calls the named Lua global function. Returns LNil if the hook is
// not defined or fails; Lua runtime errors, including hitting the instruction
// limit, are logged at Warn level.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	err := Limited(m.L, m.instLimit, func() error {
		return m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		msg := "scripting: Lua runtime error"
		if errors.Is(err, ErrInstructionLimit) {
			msg = "scripting: hook ran out of instructions"
		}
		m.logger.Warn(msg, zap.String("hook", hook), zap.Error(err))
		return lua.LNil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret
}

// NewTable builds a Lua table holding fields, for passing to CallHook.
func (m *Manager) NewTable(fields map[string]lua.LValue) *lua.LTable {
	m.mu.Lock()
	defer m.mu.Unlock()
	tbl := m.L.NewTable()
	for k, v := range fields {
		tbl.RawSetString(k, v)
	}
	return tbl
}

// Close releases the Lua state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}
