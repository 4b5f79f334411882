package shadowdark

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// convertGear maps one gear record to one or more inventory items.
//
// Record values win; the catalog fills only what the record omits. A quantity above one
// expands the record into that many items.
func (cv Converter) convertGear(g GearRecord, index int) ([]inventory.Item, []string) {
	var warnings []string
	name := g.Name.String()
	if name == "" {
		return nil, []string{fmt.Sprintf("gear[%d] has no name; skipped", index)}
	}

	it := inventory.Item{
		ID:          g.InstanceID.OrElse(fmt.Sprintf("item-%d", index)),
		Name:        name,
		Type:        cv.Catalog.InferType(name, g.Type.String()),
		Description: string(g.Description),
		Slots:       g.Slots.Or(1),
		Value:       inventory.CoinsFromCost(g.Cost.Or(0), g.Currency.String()),
		Equipped:    bool(g.Equipped),
	}
	if it.Slots < 0 {
		warnings = append(warnings, fmt.Sprintf("%s: negative slots %d treated as 0", name, it.Slots))
		it.Slots = 0
	}
	if cost := g.Cost.Or(0); cost < 0 {
		warnings = append(warnings, fmt.Sprintf("%s: negative cost %d treated as 0", name, cost))
		it.Value = inventory.Coins{}
	}

	switch it.Type {
	case inventory.TypeWeapon:
		warnings = append(warnings, cv.fillWeapon(&it, g)...)
	case inventory.TypeArmor:
		ac := g.ArmorAC.OrElse(0)
		if ac == 0 {
			ac, _ = cv.Catalog.Armor(name)
		}
		if ac == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: armor with no known AC", name))
		}
		it.ArmorAC = ac
	case inventory.TypeShield:
		bonus := g.ShieldACBonus.OrElse(0)
		if bonus == 0 {
			bonus, _ = cv.Catalog.Shield(name)
		}
		if bonus == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: shield with no known AC bonus", name))
		}
		it.ShieldACBonus = bonus
	}

	fillUnits(&it, g)
	return inventory.ExpandQuantity(it, g.Quantity.OrElse(1)), warnings
}

func (cv Converter) fillWeapon(it *inventory.Item, g GearRecord) []string {
	var warnings []string
	stats, known := cv.Catalog.Weapon(it.Name)

	damage := g.Damage.String()
	switch {
	case damage == "" && !known:
		warnings = append(warnings, fmt.Sprintf("%s: unknown weapon, using %s %s", it.Name, stats.Damage, stats.Ability))
		damage = stats.Damage
	case damage == "":
		damage = stats.Damage
	case !dice.IsNotation(damage):
		warnings = append(warnings, fmt.Sprintf("%s: damage %q is not dice notation, using %s", it.Name, damage, stats.Damage))
		damage = stats.Damage
	}
	it.Damage = damage

	ability := strings.ToUpper(g.WeaponAbility.String())
	switch ability {
	case "":
		ability = stats.Ability
	case inventory.AbilitySTR, inventory.AbilityDEX, inventory.AbilityINT:
	default:
		warnings = append(warnings, fmt.Sprintf("%s: weapon ability %q unsupported, using %s", it.Name, ability, stats.Ability))
		ability = stats.Ability
	}
	it.WeaponAbility = ability
	it.AttackBonus = g.AttackBonus.Or(stats.AttackBonus)

	if db := g.DamageBonus.String(); db != "" {
		if _, err := dice.ParseBonus(db); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: damage bonus %q dropped", it.Name, db))
		} else {
			it.DamageBonus = db
		}
	}
	return warnings
}

// fillUnits copies unit bookkeeping. A record with totalUnits is tracked with
// unitsPerSlot defaulting to the total and currentUnits defaulting to the total.
func fillUnits(it *inventory.Item, g GearRecord) {
	switch {
	case g.TotalUnits.Set:
		it.TotalUnits = max(g.TotalUnits.Value, 0)
		it.UnitsPerSlot = g.UnitsPerSlot.OrElse(g.TotalUnits.OrElse(1))
		if it.UnitsPerSlot < 1 {
			it.UnitsPerSlot = 1
		}
		it.CurrentUnits = max(g.CurrentUnits.Or(it.TotalUnits), 0)
	case g.UnitsPerSlot.OrElse(0) > 0:
		it.UnitsPerSlot = g.UnitsPerSlot.Value
		it.CurrentUnits = max(g.CurrentUnits.Or(it.UnitsPerSlot), 0)
	}
}
