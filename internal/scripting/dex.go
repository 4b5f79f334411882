package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// DexHook is the Lua global a DEX rules script must define:
//
//	function dex_bonus(armor, dex_mod) ... end
//
// armor is nil when unarmored, otherwise a table with name, ac, and slots fields.
const DexHook = "dex_bonus"

// ErrMissingHook is returned when a loaded script does not define the required hook.
var ErrMissingHook = errors.New("script does not define the required hook")

// DexScript is a character.DexRule whose decision is made by a Lua hook.
// A hook that errors or returns a non-number contributes 0 and logs a warning.
type DexScript struct {
	m      *Manager
	logger *zap.Logger
}

// NewDexScript wraps a Manager that already has a DEX script loaded.
//
// Precondition: m and logger must be non-nil.
// Postcondition: returns ErrMissingHook when m lacks DexHook.
func NewDexScript(m *Manager, logger *zap.Logger) (*DexScript, error) {
	if !m.HasHook(DexHook) {
		return nil, fmt.Errorf("scripting: %s: %w", DexHook, ErrMissingHook)
	}
	return &DexScript{m: m, logger: logger}, nil
}

// LoadDexScript loads the Lua file at path into a fresh sandbox and returns the rule.
//
// Postcondition: on success the caller must Close the returned DexScript.
func LoadDexScript(path string, instLimit int, logger *zap.Logger) (*DexScript, error) {
	m := NewManager(instLimit, logger)
	if err := m.LoadFile(path); err != nil {
		m.Close()
		return nil, err
	}
	d, err := NewDexScript(m, logger)
	if err != nil {
		m.Close()
		return nil, err
	}
	return d, nil
}

// DexContribution implements character.DexRule.
func (d *DexScript) DexContribution(armor *inventory.Item, dexMod int) int {
	armorArg := lua.LValue(lua.LNil)
	if armor != nil {
		armorArg = d.m.NewTable(map[string]lua.LValue{
			"name":  lua.LString(armor.Name),
			"ac":    lua.LNumber(armor.ArmorAC),
			"slots": lua.LNumber(armor.Slots),
		})
	}

	ret := d.m.CallHook(DexHook, armorArg, lua.LNumber(dexMod))
	n, ok := ret.(lua.LNumber)
	if !ok {
		d.logger.Warn("scripting: dex_bonus returned a non-number, using 0",
			zap.String("type", ret.Type().String()),
		)
		return 0
	}
	return int(n)
}

// Close releases the underlying Lua state.
func (d *DexScript) Close() {
	d.m.Close()
}
