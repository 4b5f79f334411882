// Package scripting provides a sandboxed GopherLua environment for table-specific rules
// hooks, such as how much DEX a given armor lets a character add to AC.
package scripting

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the opcodes of one script run when no limit is configured.
const DefaultInstructionLimit = 100_000

// ErrInstructionLimit is returned when a run spends its whole opcode budget.
var ErrInstructionLimit = errors.New("lua instruction limit exceeded")

// unsafeGlobals are base-library functions that can reach the filesystem or load code.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "module"}

// opBudget is a context that cancels itself once Done has been polled limit times.
// GopherLua polls Done once per opcode, so the poll count is the opcode count.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func newOpBudget(limit int) *opBudget {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func (b *opBudget) spent() bool { return b.left.Load() <= 0 }

// NewSandboxedState returns an LState with only the base, table, string and math libraries
// and with unsafeGlobals removed. The caller must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// Limited runs fn with L capped at instLimit opcodes; 0 or less uses DefaultInstructionLimit.
// Every call starts with a fresh budget.
//
// Precondition: L is not executing.
// Postcondition: an error caused by the cap wraps ErrInstructionLimit.
func Limited(L *lua.LState, instLimit int, fn func() error) error {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	budget := newOpBudget(instLimit)
	defer budget.cancel()
	L.SetContext(budget)
	defer L.RemoveContext()

	err := fn()
	if err != nil && budget.spent() {
		return fmt.Errorf("%w after %d opcodes: %v", ErrInstructionLimit, instLimit, err)
	}
	return err
}
