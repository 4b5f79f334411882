package inventory

import (
	"errors"
	"fmt"
)

// Type constants for Item.Type.
const (
	TypeWeapon     = "weapon"
	TypeArmor      = "armor"
	TypeShield     = "shield"
	TypeConsumable = "consumable"
	TypeGear       = "gear"
	TypeTreasure   = "treasure"
)

// validTypes is the set of valid Item types.
var validTypes = map[string]bool{
	TypeWeapon:     true,
	TypeArmor:      true,
	TypeShield:     true,
	TypeConsumable: true,
	TypeGear:       true,
	TypeTreasure:   true,
}

// IsValidType reports whether t is one of the six internal item types.
func IsValidType(t string) bool {
	return validTypes[t]
}

// Ability short names a weapon may attack with.
const (
	AbilitySTR = "STR"
	AbilityDEX = "DEX"
	AbilityINT = "INT"
)

// Item is one tracked inventory entry.
//
// Type-conditional fields use the zero value for "absent": a weapon without Damage
// has no damage notation, an armor with ArmorAC 0 does not set a base AC, and an item
// with UnitsPerSlot 0 is not unit-tracked.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Slots       int    `json:"slots"`
	Value       Coins  `json:"value"`
	Equipped    bool   `json:"equipped"`

	// weapon
	Damage        string `json:"damage,omitempty"`
	WeaponAbility string `json:"weaponAbility,omitempty"`
	AttackBonus   int    `json:"attackBonus,omitempty"`
	DamageBonus   string `json:"damageBonus,omitempty"`

	// armor
	ArmorAC int `json:"armorAC,omitempty"`

	// shield
	ShieldACBonus int `json:"shieldACBonus,omitempty"`

	// consumable
	TotalUnits   int `json:"totalUnits,omitempty"`
	CurrentUnits int `json:"currentUnits,omitempty"`
	UnitsPerSlot int `json:"unitsPerSlot,omitempty"`
}

// Validate checks that the Item satisfies its invariants.
//
// Precondition: it is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (it *Item) Validate() error {
	var errs []error
	if it.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if it.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validTypes[it.Type] {
		errs = append(errs, fmt.Errorf("Type must be one of weapon, armor, shield, consumable, gear, treasure; got %q", it.Type))
	}
	if it.Slots < 0 {
		errs = append(errs, errors.New("Slots must be >= 0"))
	}
	if it.Value.Gold < 0 || it.Value.Silver < 0 || it.Value.Copper < 0 {
		errs = append(errs, errors.New("Value must not contain negative coins"))
	}
	if it.UnitsPerSlot < 0 || it.CurrentUnits < 0 || it.TotalUnits < 0 {
		errs = append(errs, errors.New("unit counts must be >= 0"))
	}
	if it.WeaponAbility != "" && it.WeaponAbility != AbilitySTR && it.WeaponAbility != AbilityDEX && it.WeaponAbility != AbilityINT {
		errs = append(errs, fmt.Errorf("WeaponAbility must be one of STR, DEX, INT; got %q", it.WeaponAbility))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// CloneItems returns a copy of items that shares no backing array with the input.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
