package character

import (
	"fmt"
	"strings"
)

// AbilityKey is the three-letter short name of an ability.
type AbilityKey string

// The six abilities every character has.
const (
	STR AbilityKey = "STR"
	DEX AbilityKey = "DEX"
	CON AbilityKey = "CON"
	INT AbilityKey = "INT"
	WIS AbilityKey = "WIS"
	CHA AbilityKey = "CHA"
)

// DefaultScore is the score of an ability nobody has set.
const DefaultScore = 10

// AbilityOrder is the canonical display order.
var AbilityOrder = []AbilityKey{STR, DEX, CON, INT, WIS, CHA}

var abilityNames = map[AbilityKey]string{
	STR: "Strength",
	DEX: "Dexterity",
	CON: "Constitution",
	INT: "Intelligence",
	WIS: "Wisdom",
	CHA: "Charisma",
}

// AbilityName returns the full name for k, or "" when k is not an ability.
func AbilityName(k AbilityKey) string {
	return abilityNames[k]
}

// ParseAbilityKey accepts a short or full ability name in any case.
func ParseAbilityKey(s string) (AbilityKey, bool) {
	s = strings.TrimSpace(s)
	for _, k := range AbilityOrder {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, abilityNames[k]) {
			return k, true
		}
	}
	return "", false
}

// AbilityModifier converts a score to its modifier.
//
// Postcondition: result == floor((score - 10) / 2).
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}

// FormatModifier renders a modifier with an explicit sign, e.g. "+2" or "-1".
func FormatModifier(mod int) string {
	return fmt.Sprintf("%+d", mod)
}

// Ability is one of the six scores. The modifier is always derived.
type Ability struct {
	Name      string     `json:"name"`
	ShortName AbilityKey `json:"shortName"`
	Score     int        `json:"score"`
}

// Modifier returns AbilityModifier(a.Score).
func (a Ability) Modifier() int {
	return AbilityModifier(a.Score)
}

// Abilities maps each short name to its ability.
//
// Invariant: values built by DefaultAbilities or NewAbilities contain all six keys.
type Abilities map[AbilityKey]Ability

// DefaultAbilities returns all six abilities at DefaultScore.
func DefaultAbilities() Abilities {
	a := make(Abilities, len(AbilityOrder))
	for _, k := range AbilityOrder {
		a[k] = Ability{Name: abilityNames[k], ShortName: k, Score: DefaultScore}
	}
	return a
}

// NewAbilities builds a full set from scores; missing or non-positive scores become DefaultScore.
func NewAbilities(scores map[AbilityKey]int) Abilities {
	a := DefaultAbilities()
	for k, v := range scores {
		if _, ok := a[k]; !ok || v <= 0 {
			continue
		}
		a[k] = Ability{Name: abilityNames[k], ShortName: k, Score: v}
	}
	return a
}

// Score returns the score of k, or DefaultScore when it is absent.
func (a Abilities) Score(k AbilityKey) int {
	if ab, ok := a[k]; ok {
		return ab.Score
	}
	return DefaultScore
}

// Modifier returns the modifier of k.
func (a Abilities) Modifier(k AbilityKey) int {
	return AbilityModifier(a.Score(k))
}

// Scores returns the score of every ability keyed by short name.
func (a Abilities) Scores() map[AbilityKey]int {
	out := make(map[AbilityKey]int, len(AbilityOrder))
	for _, k := range AbilityOrder {
		out[k] = a.Score(k)
	}
	return out
}

// Ordered returns the six abilities in canonical order, filling gaps with defaults.
func (a Abilities) Ordered() []Ability {
	out := make([]Ability, 0, len(AbilityOrder))
	for _, k := range AbilityOrder {
		ab, ok := a[k]
		if !ok {
			ab = Ability{Name: abilityNames[k], ShortName: k, Score: DefaultScore}
		}
		out = append(out, ab)
	}
	return out
}

// Clone returns an independent copy of a.
func (a Abilities) Clone() Abilities {
	if a == nil {
		return nil
	}
	out := make(Abilities, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
