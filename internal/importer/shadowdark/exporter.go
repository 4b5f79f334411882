package shadowdark

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// Exporter maps a character sheet back to the generator format.
type Exporter struct {
	// Rule computes the exported armorClass. Nil uses character.DefaultDexRule.
	Rule   character.DexRule
	Logger *zap.Logger
}

// Export builds the generator document for s.
//
// Postcondition: the result carries every generator field. Talents without a structured
// bonus are converted through ParseBonusDescription; those that do not parse are exported
// as generic "Other" bonuses and logged at warn level.
func (e Exporter) Export(s character.State) *Character {
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rule := e.Rule
	if rule == nil {
		rule = character.DefaultDexRule
	}

	stats := make(map[string]FlexInt, len(character.AbilityOrder))
	rolled := make(map[string]FlexInt, len(character.AbilityOrder))
	for _, a := range s.Abilities.Ordered() {
		stats[string(a.ShortName)] = Int(a.Score)
		rolled[string(a.ShortName)] = Int(a.Score)
	}

	out := &Character{
		Name:          FlexString(s.Name),
		Stats:         stats,
		RolledStats:   rolled,
		Ancestry:      FlexString(s.Ancestry),
		Class:         FlexString(s.Class),
		Level:         Int(s.Level),
		Levels:        []LevelRecord{},
		CurrentXP:     Int(s.CurrentXP),
		XPToNextLevel: Int(s.XPToNextLevel),
		AmbitionTalentLevel: &LevelRecord{
			Level:             Int(1),
			HitPointRoll:      Int(0),
			StoutHitPointRoll: Int(0),
		},
		Alignment:      FlexString(s.Alignment),
		Background:     FlexString(s.Background),
		MaxHitPoints:   Int(s.MaxHitPoints),
		ArmorClass:     Int(s.ArmorClass(rule)),
		ACBonus:        Int(s.ACBonus),
		GearSlotsTotal: Int(s.SlotsAvailable()),
		GearSlotsUsed:  Int(s.SlotsUsed()),
		Bonuses:        []BonusRecord{},
		Talents:        []TalentRecord{},
		Traits:         []BonusRecord{},
		Gear:           make([]GearRecord, 0, len(s.Inventory)),
		Languages:      FlexString(s.Languages),
		Gold:           Int(s.Coins.Gold),
		Silver:         Int(s.Coins.Silver),
		Copper:         Int(s.Coins.Copper),
		WeaponBonuses:  make(map[string]FlexInt, len(s.WeaponBonuses)),
		LuckTokenUsed:  FlexBool(s.LuckTokenUsed),
		Notes:          FlexString(s.Notes),
	}

	for _, t := range s.Talents {
		rec, degraded := talentBonus(t)
		if degraded {
			log.Warn("talent exported as generic bonus",
				zap.String("talent", t.ID),
				zap.String("description", t.Description),
			)
		}
		out.Bonuses = append(out.Bonuses, fromBonus(rec))
		out.Talents = append(out.Talents, talentRecord(t))
	}
	for _, b := range s.Traits {
		out.Traits = append(out.Traits, fromBonus(b))
	}
	for _, it := range s.Inventory {
		out.Gear = append(out.Gear, gearRecord(it))
	}

	names := make([]string, len(s.Spells))
	for i, sp := range s.Spells {
		names[i] = sp.Name
	}
	out.SpellsKnown = FlexString(strings.Join(names, ", "))

	for weapon, bonus := range s.WeaponBonuses {
		out.WeaponBonuses[weapon] = Int(bonus)
	}

	shop := &ShopRecord{
		ShopItems:  make([]json.RawMessage, 0, len(s.Shop.Items)),
		BuyMarkup:  Int(s.Shop.BuyMarkup),
		SellMarkup: Int(s.Shop.SellMarkup),
	}
	for _, it := range s.Shop.Items {
		raw, err := json.Marshal(it)
		if err != nil {
			log.Error("encoding shop item", zap.String("item", it.ID), zap.Error(err))
			continue
		}
		shop.ShopItems = append(shop.ShopItems, raw)
	}
	out.Shop = shop

	log.Debug("character exported",
		zap.String("character", s.Name),
		zap.Int("gear", len(out.Gear)),
		zap.Int("bonuses", len(out.Bonuses)),
	)
	return out
}

// talentBonus returns the bonus record for t and whether it had to be degraded.
func talentBonus(t character.Talent) (character.BonusRecord, bool) {
	if t.Bonus != nil {
		return t.Bonus.Clone(), false
	}
	rec, ok := ParseBonusDescription(t.Name, t.Description)
	return rec, !ok
}

func talentRecord(t character.Talent) TalentRecord {
	r := TalentRecord{
		ID:          FlexString(t.ID),
		Name:        FlexString(t.Name),
		Description: FlexString(t.Description),
	}
	if t.Level != 0 {
		r.Level = Int(t.Level)
	}
	if t.Bonus != nil {
		b := fromBonus(*t.Bonus)
		r.Bonus = &b
	}
	return r
}

func gearRecord(it inventory.Item) GearRecord {
	cost, code := inventory.CostOf(it.Value)
	g := GearRecord{
		InstanceID:    FlexString(it.ID),
		Name:          FlexString(it.Name),
		Type:          FlexString(it.Type),
		Description:   FlexString(it.Description),
		Slots:         Int(it.Slots),
		Cost:          Int(cost),
		Currency:      FlexString(code),
		Equipped:      FlexBool(it.Equipped),
		Damage:        FlexString(it.Damage),
		WeaponAbility: FlexString(it.WeaponAbility),
		DamageBonus:   FlexString(it.DamageBonus),
	}
	optional := func(v int) FlexInt {
		if v == 0 {
			return FlexInt{}
		}
		return Int(v)
	}
	g.AttackBonus = optional(it.AttackBonus)
	g.ArmorAC = optional(it.ArmorAC)
	g.ShieldACBonus = optional(it.ShieldACBonus)
	g.TotalUnits = optional(it.TotalUnits)
	g.CurrentUnits = optional(it.CurrentUnits)
	g.UnitsPerSlot = optional(it.UnitsPerSlot)
	return g
}

// Marshal encodes c as JSON indented by indent spaces; indent <= 0 produces compact output.
func Marshal(c *Character, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent <= 0 {
		data, err = json.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, fmt.Errorf("shadowdark: encoding character: %w", err)
	}
	return data, nil
}
