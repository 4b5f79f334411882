package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
)

// RegisterModules registers the sheet.* helper table into L.
//
//	sheet.modifier(score)      -> ability modifier for score
//	sheet.clamp(v, lo, hi)     -> v limited to [lo, hi]
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: sheet global is defined in L.
func RegisterModules(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "modifier", L.NewFunction(func(L *lua.LState) int {
		score := L.CheckInt(1)
		L.Push(lua.LNumber(character.AbilityModifier(score)))
		return 1
	}))
	L.SetField(mod, "clamp", L.NewFunction(func(L *lua.LState) int {
		v, lo, hi := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
		L.Push(lua.LNumber(min(max(v, lo), hi)))
		return 1
	}))
	L.SetGlobal("sheet", mod)
}
