// Package character defines the character sheet aggregate and its derived-stat rules.
package character

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// ErrTalentNotFound is returned when a talent id is not on the sheet.
var ErrTalentNotFound = errors.New("talent not found")

// ErrSpellNotFound is returned when a spell id is not on the sheet.
var ErrSpellNotFound = errors.New("spell not found")

// ErrUnknownAttribute is returned by SetAttribute for a name that is not an identity field.
var ErrUnknownAttribute = errors.New("unknown character attribute")

// Identity defaults applied when a field is missing.
const (
	UnknownValue     = "Unknown"
	DefaultAlignment = "Neutral"
	XPPerLevel       = 10
)

// BonusRecord is the external generator's flattened encoding of a talent or trait.
// Pointer fields distinguish "absent" from zero.
type BonusRecord struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	BonusName      string `json:"bonusName,omitempty"`
	SourceType     string `json:"sourceType,omitempty"`
	SourceName     string `json:"sourceName,omitempty"`
	SourceCategory string `json:"sourceCategory,omitempty"`
	BonusTo        string `json:"bonusTo,omitempty"`
	BonusAmount    *int   `json:"bonusAmount,omitempty"`
	GainedAtLevel  *int   `json:"gainedAtLevel,omitempty"`
}

// Clone returns a copy of b that shares no pointers with it.
func (b BonusRecord) Clone() BonusRecord {
	out := b
	if b.BonusAmount != nil {
		v := *b.BonusAmount
		out.BonusAmount = &v
	}
	if b.GainedAtLevel != nil {
		v := *b.GainedAtLevel
		out.GainedAtLevel = &v
	}
	return out
}

// Talent is rules text gained at a level. Bonus, when set, is the structured record the
// talent came from and is exported verbatim; the description is only display text.
type Talent struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Level       int          `json:"level,omitempty"`
	Description string       `json:"description"`
	Bonus       *BonusRecord `json:"bonus,omitempty"`
}

// Spell is a known spell. Active false means it failed and is unavailable until rest.
type Spell struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tier        int    `json:"tier"`
	Duration    string `json:"duration"`
	Range       string `json:"range"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Shop is the in-fiction store: its stock and the percentage markups on buying and selling.
type Shop struct {
	Items      []inventory.Item `json:"shopItems"`
	BuyMarkup  int              `json:"buyMarkup"`
	SellMarkup int              `json:"sellMarkup"`
}

// State is the whole character sheet.
type State struct {
	Name       string `json:"name"`
	Ancestry   string `json:"ancestry"`
	Class      string `json:"class"`
	Level      int    `json:"level"`
	Background string `json:"background"`
	Alignment  string `json:"alignment"`
	Languages  string `json:"languages"`

	Abilities Abilities     `json:"abilities"`
	Talents   []Talent      `json:"talents"`
	Traits    []BonusRecord `json:"traits"`
	Spells    []Spell       `json:"spells"`

	CurrentXP     int  `json:"currentXP"`
	XPToNextLevel int  `json:"xpToNextLevel"`
	LuckTokenUsed bool `json:"luckTokenUsed"`

	HitPoints     int            `json:"hitPoints"`
	MaxHitPoints  int            `json:"maxHitPoints"`
	ACBonus       int            `json:"acBonus"`
	WeaponBonuses map[string]int `json:"weaponBonuses"`

	Inventory []inventory.Item `json:"inventory"`
	Coins     inventory.Coins  `json:"coins"`
	Shop      Shop             `json:"shop"`

	Notes string `json:"notes"`
}

// Defaults seeds a fresh sheet.
type Defaults struct {
	BuyMarkup  int
	SellMarkup int
}

// New returns an empty level-1 sheet.
//
// Postcondition: all six abilities are present at DefaultScore; XPToNextLevel == XPPerLevel.
func New(d Defaults) State {
	return State{
		Level:         1,
		Abilities:     DefaultAbilities(),
		XPToNextLevel: XPPerLevel,
		WeaponBonuses: map[string]int{},
		Shop:          Shop{BuyMarkup: d.BuyMarkup, SellMarkup: d.SellMarkup},
	}
}

// Clone returns a deep copy of s.
//
// Postcondition: mutating the result never affects s.
func (s State) Clone() State {
	out := s
	out.Abilities = s.Abilities.Clone()
	if s.Talents != nil {
		out.Talents = make([]Talent, len(s.Talents))
		for i, t := range s.Talents {
			if t.Bonus != nil {
				b := t.Bonus.Clone()
				t.Bonus = &b
			}
			out.Talents[i] = t
		}
	}
	if s.Traits != nil {
		out.Traits = make([]BonusRecord, len(s.Traits))
		for i, b := range s.Traits {
			out.Traits[i] = b.Clone()
		}
	}
	if s.Spells != nil {
		out.Spells = append([]Spell(nil), s.Spells...)
	}
	out.WeaponBonuses = maps.Clone(s.WeaponBonuses)
	out.Inventory = inventory.CloneItems(s.Inventory)
	out.Shop.Items = inventory.CloneItems(s.Shop.Items)
	return out
}

// SetAttribute assigns one identity field by its external name.
// "level" must be a positive integer.
func (s *State) SetAttribute(name, value string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		s.Name = value
	case "ancestry":
		s.Ancestry = value
	case "class":
		s.Class = value
	case "background":
		s.Background = value
	case "alignment":
		s.Alignment = value
	case "level":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return fmt.Errorf("character: level must be a positive integer, got %q", value)
		}
		s.Level = n
	default:
		return fmt.Errorf("character: %q: %w", name, ErrUnknownAttribute)
	}
	return nil
}

// TalentIndex returns the position of talent id, or -1.
func (s State) TalentIndex(id string) int {
	for i := range s.Talents {
		if s.Talents[i].ID == id {
			return i
		}
	}
	return -1
}

// SpellIndex returns the position of spell id, or -1.
func (s State) SpellIndex(id string) int {
	for i := range s.Spells {
		if s.Spells[i].ID == id {
			return i
		}
	}
	return -1
}
