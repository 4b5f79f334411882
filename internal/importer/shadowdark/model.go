// Package shadowdark reads and writes the character JSON produced by the Shadowdark
// character generator and maps it to and from character.State.
package shadowdark

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt is an integer that may be absent. It decodes JSON numbers and numeric strings;
// null, booleans, objects, arrays and unparsable strings decode as absent.
type FlexInt struct {
	Value int
	Set   bool
}

// Int returns a present FlexInt holding v.
func Int(v int) FlexInt {
	return FlexInt{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimPrefix(strings.TrimSpace(str), "+")
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = Int(n)
		return nil
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
		*f = Int(int(math.Trunc(x)))
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Absent values encode as null.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(f.Value), 10), nil
}

// IsZero reports absence so that omitzero fields are dropped when unset.
func (f FlexInt) IsZero() bool {
	return !f.Set
}

// Or returns the value when present, including zero, and def otherwise.
func (f FlexInt) Or(def int) int {
	if f.Set {
		return f.Value
	}
	return def
}

// OrElse returns the value when present and non-zero, and def otherwise.
func (f FlexInt) OrElse(def int) int {
	if f.Set && f.Value != 0 {
		return f.Value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (f FlexInt) Ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

func intFromPtr(p *int) FlexInt {
	if p == nil {
		return FlexInt{}
	}
	return Int(*p)
}

// FlexString is a string that also accepts JSON numbers and booleans, keeping their literal text.
// null, objects and arrays decode as the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	*f = ""
	s := strings.TrimSpace(string(b))
	switch {
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexString(str)
	case s == "null", strings.HasPrefix(s, "{"), strings.HasPrefix(s, "["):
	default:
		*f = FlexString(s)
	}
	return nil
}

// String returns the value with surrounding whitespace removed.
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// OrElse returns the trimmed value, or def when it is empty.
func (f FlexString) OrElse(def string) string {
	if s := f.String(); s != "" {
		return s
	}
	return def
}

// FlexBool is a boolean that also accepts "true"/"false" strings and numbers.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		*f = true
	default:
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			*f = x != 0
			return nil
		}
		*f = false
	}
	return nil
}

// BonusRecord is one entry of the generator's flattened bonuses list.
type BonusRecord struct {
	ID             FlexString `json:"id,omitempty"`
	Name           FlexString `json:"name,omitempty"`
	BonusName      FlexString `json:"bonusName,omitempty"`
	SourceType     FlexString `json:"sourceType,omitempty"`
	SourceName     FlexString `json:"sourceName,omitempty"`
	SourceCategory FlexString `json:"sourceCategory,omitempty"`
	BonusTo        FlexString `json:"bonusTo,omitempty"`
	BonusAmount    FlexInt    `json:"bonusAmount,omitzero"`
	GainedAtLevel  FlexInt    `json:"gainedAtLevel,omitzero"`
}

// TalentRecord is a talent in the sheet's own shape. Bonus carries the structured record
// the talent was built from, when there is one.
type TalentRecord struct {
	ID          FlexString   `json:"id,omitempty"`
	Name        FlexString   `json:"name,omitempty"`
	Level       FlexInt      `json:"level,omitzero"`
	Description FlexString   `json:"description"`
	Bonus       *BonusRecord `json:"bonus,omitempty"`
}

// LevelRecord is the generator's per-level roll history.
type LevelRecord struct {
	Level                         FlexInt    `json:"level"`
	TalentRolledDesc              FlexString `json:"talentRolledDesc"`
	TalentRolledName              FlexString `json:"talentRolledName"`
	Rolled12TalentOrTwoStatPoints FlexString `json:"Rolled12TalentOrTwoStatPoints"`
	Rolled12ChosenTalentDesc      FlexString `json:"Rolled12ChosenTalentDesc"`
	Rolled12ChosenTalentName      FlexString `json:"Rolled12ChosenTalentName"`
	HitPointRoll                  FlexInt    `json:"HitPointRoll"`
	StoutHitPointRoll             FlexInt    `json:"stoutHitPointRoll"`
}

// GearRecord is one entry of the generator's gear list. Cost is a single amount in the
// denomination named by Currency.
type GearRecord struct {
	InstanceID    FlexString `json:"instanceId"`
	Name          FlexString `json:"name"`
	Type          FlexString `json:"type"`
	Description   FlexString `json:"description"`
	Slots         FlexInt    `json:"slots"`
	Cost          FlexInt    `json:"cost"`
	Currency      FlexString `json:"currency"`
	Equipped      FlexBool   `json:"equipped"`
	Damage        FlexString `json:"damage,omitempty"`
	WeaponAbility FlexString `json:"weaponAbility,omitempty"`
	AttackBonus   FlexInt    `json:"attackBonus,omitzero"`
	DamageBonus   FlexString `json:"damageBonus,omitempty"`
	ArmorAC       FlexInt    `json:"armorAC,omitzero"`
	ShieldACBonus FlexInt    `json:"shieldACBonus,omitzero"`
	TotalUnits    FlexInt    `json:"totalUnits,omitzero"`
	CurrentUnits  FlexInt    `json:"currentUnits,omitzero"`
	UnitsPerSlot  FlexInt    `json:"unitsPerSlot,omitzero"`
	Quantity      FlexInt    `json:"quantity,omitzero"`
}

// ShopRecord is the shop sub-object. Items are kept raw and decoded one at a time so a
// single malformed entry does not discard the rest.
type ShopRecord struct {
	ShopItems  []json.RawMessage `json:"shopItems"`
	BuyMarkup  FlexInt           `json:"buyMarkup"`
	SellMarkup FlexInt           `json:"sellMarkup"`
}

// Character is the typed form of a generator export. Every field is optional on input.
type Character struct {
	Name                FlexString         `json:"name"`
	Stats               map[string]FlexInt `json:"stats"`
	RolledStats         map[string]FlexInt `json:"rolledStats,omitempty"`
	Ancestry            FlexString         `json:"ancestry"`
	Class               FlexString         `json:"class"`
	Level               FlexInt            `json:"level"`
	Levels              []LevelRecord      `json:"levels"`
	XP                  FlexInt            `json:"XP,omitzero"`
	CurrentXP           FlexInt            `json:"currentXP,omitzero"`
	TotalXP             FlexInt            `json:"totalXP,omitzero"`
	XPToNextLevel       FlexInt            `json:"xpToNextLevel,omitzero"`
	AmbitionTalentLevel *LevelRecord       `json:"ambitionTalentLevel,omitempty"`
	Title               FlexString         `json:"title"`
	Alignment           FlexString         `json:"alignment"`
	Background          FlexString         `json:"background"`
	Deity               FlexString         `json:"deity"`
	MaxHitPoints        FlexInt            `json:"maxHitPoints"`
	HitPoints           FlexInt            `json:"hitPoints,omitzero"`
	ArmorClass          FlexInt            `json:"armorClass"`
	ACBonus             FlexInt            `json:"acBonus"`
	GearSlotsTotal      FlexInt            `json:"gearSlotsTotal"`
	GearSlotsUsed       FlexInt            `json:"gearSlotsUsed"`
	Bonuses             []BonusRecord      `json:"bonuses"`
	Talents             []TalentRecord     `json:"talents"`
	Traits              []BonusRecord      `json:"traits"`
	Gear                []GearRecord       `json:"gear"`
	SpellsKnown         FlexString         `json:"spellsKnown"`
	Languages           FlexString         `json:"languages"`
	Gold                FlexInt            `json:"gold"`
	Silver              FlexInt            `json:"silver"`
	Copper              FlexInt            `json:"copper"`
	WeaponBonuses       map[string]FlexInt `json:"weaponBonuses"`
	LuckTokenUsed       FlexBool           `json:"luckTokenUsed"`
	Notes               FlexString         `json:"notes"`
	Shop                *ShopRecord        `json:"shop,omitempty"`

	// Issues lists fields Parse had to discard because their JSON type was wrong.
	Issues []string `json:"-"`
}
