// Package combat resolves weapon attacks and ability checks for a character sheet.
package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// FallbackDamage is rolled for a weapon whose damage notation is missing or unreadable.
const FallbackDamage = "1d4"

// Roller is the subset of *dice.Roller used to resolve rolls.
type Roller interface {
	Roll(expr dice.Expression) dice.RollResult
	RollD20(mode dice.Mode) dice.D20Result
}

// AttackResult holds the outcome of a single weapon attack.
type AttackResult struct {
	Weapon string
	Mode   dice.Mode
	// Attack is the d20 test; Kept is the die that counts.
	Attack      dice.D20Result
	AttackBonus int
	AttackTotal int
	// Critical is true on a natural 20; damage dice are doubled.
	Critical bool
	Damage   dice.RollResult
	// DamageBonus is the flat or rolled bonus added on top of Damage.
	DamageBonus int
	DamageTotal int
}

// AttackAbility returns the ability a weapon attacks with; STR when unset or unknown.
func AttackAbility(weapon inventory.Item) character.AbilityKey {
	if k, ok := character.ParseAbilityKey(weapon.WeaponAbility); ok {
		return k
	}
	return character.STR
}

// AttackBonus returns the total attack modifier for weapon.
//
// Postcondition: result == modifier(weapon ability) + (weaponBonuses[weapon.ID] if set, else weapon.AttackBonus).
func AttackBonus(weapon inventory.Item, abilities character.Abilities, weaponBonuses map[string]int) int {
	bonus := weapon.AttackBonus
	if override, ok := weaponBonuses[weapon.ID]; ok {
		bonus = override
	}
	return abilities.Modifier(AttackAbility(weapon)) + bonus
}

// Attack rolls an attack with weapon.
//
// A natural 20 is a critical hit: the weapon's damage dice are rolled twice over, as is a dice
// damage bonus. A flat damage bonus is added once.
//
// Precondition: r must be non-nil.
func Attack(weapon inventory.Item, abilities character.Abilities, weaponBonuses map[string]int, mode dice.Mode, r Roller) AttackResult {
	d20 := r.RollD20(mode)
	bonus := AttackBonus(weapon, abilities, weaponBonuses)
	crit := d20.Natural20()

	expr, err := dice.Parse(weapon.Damage)
	if err != nil {
		expr = dice.MustParse(FallbackDamage)
	}
	if crit {
		expr = dice.Doubled(expr)
	}
	dmg := r.Roll(expr)

	extra := 0
	if b, err := dice.ParseBonus(weapon.DamageBonus); err == nil {
		switch {
		case b.Dice != nil && crit:
			extra = r.Roll(dice.Doubled(*b.Dice)).Total()
		case b.Dice != nil:
			extra = r.Roll(*b.Dice).Total()
		default:
			extra = b.Flat
		}
	}

	return AttackResult{
		Weapon:      weapon.Name,
		Mode:        d20.Mode,
		Attack:      d20,
		AttackBonus: bonus,
		AttackTotal: d20.Kept + bonus,
		Critical:    crit,
		Damage:      dmg,
		DamageBonus: extra,
		DamageTotal: dmg.Total() + extra,
	}
}

// String renders the result the way the roll log shows it,
// e.g. "Longsword (ADV): Attack 17 [17, 4] +3 = 20 | Damage 6 + 2 = 8".
func (a AttackResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s: Attack %d%s", a.Weapon, modeSuffix(a.Mode), a.Attack.Kept, rollDetails(a.Attack))
	if a.AttackBonus != 0 {
		fmt.Fprintf(&b, " %+d = %d", a.AttackBonus, a.AttackTotal)
	}
	if a.Critical {
		b.WriteString(" CRITICAL HIT!")
	}
	fmt.Fprintf(&b, " | Damage %d", a.Damage.Total())
	if a.DamageBonus != 0 {
		fmt.Fprintf(&b, " + %d = %d", a.DamageBonus, a.DamageTotal)
	}
	return b.String()
}

// CheckResult is an ability check: a d20 plus the ability modifier.
type CheckResult struct {
	Ability character.AbilityKey
	Roll    dice.D20Result
	Bonus   int
	Total   int
}

// AbilityCheck rolls a d20 test for ability k.
func AbilityCheck(abilities character.Abilities, k character.AbilityKey, mode dice.Mode, r Roller) CheckResult {
	d20 := r.RollD20(mode)
	bonus := abilities.Modifier(k)
	return CheckResult{Ability: k, Roll: d20, Bonus: bonus, Total: d20.Kept + bonus}
}

// String renders e.g. "DEX (DIS): 7 [7, 15] +2 = 9".
func (c CheckResult) String() string {
	s := fmt.Sprintf("%s%s: %d%s", c.Ability, modeSuffix(c.Roll.Mode), c.Roll.Kept, rollDetails(c.Roll))
	if c.Bonus != 0 {
		s += fmt.Sprintf(" %+d = %d", c.Bonus, c.Total)
	}
	return s
}

// CastingRoll rolls the unmodified d20 used to attempt a spell.
func CastingRoll(spellName string, mode dice.Mode, r Roller) (dice.D20Result, string) {
	d20 := r.RollD20(mode)
	return d20, fmt.Sprintf("%s%s: %d%s", spellName, modeSuffix(d20.Mode), d20.Kept, rollDetails(d20))
}

func modeSuffix(m dice.Mode) string {
	switch m {
	case dice.Advantage:
		return " (ADV)"
	case dice.Disadvantage:
		return " (DIS)"
	}
	return ""
}

func rollDetails(r dice.D20Result) string {
	if len(r.Rolls) < 2 {
		return ""
	}
	return fmt.Sprintf(" [%d, %d]", r.Rolls[0], r.Rolls[1])
}
