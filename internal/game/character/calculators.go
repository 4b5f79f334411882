package character

import "github.com/cory-johannsen/shadowsheet/internal/game/inventory"

// BaseAC is the armor class of a character with no armor equipped.
const BaseAC = 10

// DexRule decides how much of the DEX modifier applies to armor class.
//
// armor is the equipped armor that set the base AC, or nil when unarmored.
type DexRule interface {
	DexContribution(armor *inventory.Item, dexMod int) int
}

// NoDex never adds DEX.
type NoDex struct{}

// DexContribution implements DexRule.
func (NoDex) DexContribution(*inventory.Item, int) int { return 0 }

// AlwaysDex adds the full DEX modifier regardless of armor.
type AlwaysDex struct{}

// DexContribution implements DexRule.
func (AlwaysDex) DexContribution(_ *inventory.Item, dexMod int) int { return dexMod }

// LightArmorDex adds DEX when unarmored or when the armor takes at most MaxSlots gear slots.
type LightArmorDex struct {
	MaxSlots int
}

// DexContribution implements DexRule.
func (r LightArmorDex) DexContribution(armor *inventory.Item, dexMod int) int {
	if armor == nil || armor.Slots <= r.MaxSlots {
		return dexMod
	}
	return 0
}

// TieredDex grades DEX by the armor's AC: full DEX up to AC 12, at most +2 up to AC 14, none above.
type TieredDex struct{}

// DexContribution implements DexRule.
func (TieredDex) DexContribution(armor *inventory.Item, dexMod int) int {
	switch {
	case armor == nil || armor.ArmorAC <= 12:
		return dexMod
	case armor.ArmorAC <= 14:
		return min(dexMod, 2)
	default:
		return 0
	}
}

// DefaultDexRule is applied when no rule is configured.
var DefaultDexRule DexRule = LightArmorDex{MaxSlots: 2}

// ArmorClass computes AC from the equipped gear in items.
//
// Equipped armor with a non-zero ArmorAC replaces BaseAC (the highest wins). The DEX
// contribution chosen by rule is added, then the highest equipped shield bonus, then acBonus.
// A nil rule means DefaultDexRule. The result is not clamped.
func ArmorClass(items []inventory.Item, acBonus, dexMod int, rule DexRule) int {
	if rule == nil {
		rule = DefaultDexRule
	}

	var armor *inventory.Item
	shield := 0
	for i := range items {
		it := &items[i]
		if !it.Equipped {
			continue
		}
		switch it.Type {
		case inventory.TypeArmor:
			if it.ArmorAC != 0 && (armor == nil || it.ArmorAC > armor.ArmorAC) {
				armor = it
			}
		case inventory.TypeShield:
			shield = max(shield, it.ShieldACBonus)
		}
	}

	ac := BaseAC
	if armor != nil {
		ac = armor.ArmorAC
	}
	return ac + rule.DexContribution(armor, dexMod) + shield + acBonus
}

// ArmorClass returns the sheet's AC under rule.
func (s State) ArmorClass(rule DexRule) int {
	return ArmorClass(s.Inventory, s.ACBonus, s.Abilities.Modifier(DEX), rule)
}

// SlotsAvailable returns the gear-slot capacity granted by STR.
func (s State) SlotsAvailable() int {
	return inventory.TotalSlotsAvailable(s.Abilities.Score(STR))
}

// SlotsUsed returns the slots taken by everything carried.
func (s State) SlotsUsed() int {
	return inventory.SlotsUsed(s.Inventory)
}
