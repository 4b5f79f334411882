package shadowdark

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/game/spell"
)

// Spell placeholder values for names missing from the spell database.
const (
	PlaceholderTier        = 1
	PlaceholderDescription = "Details not available"
	noSpells               = "None"
)

// Converter maps a parsed generator export to a character sheet.
type Converter struct {
	Catalog  *inventory.Catalog
	Spells   *spell.Database
	Defaults character.Defaults
	Logger   *zap.Logger
}

// Convert builds a complete sheet from c.
//
// Precondition: c, cv.Catalog and cv.Spells are non-nil.
// Postcondition: every field absent from c takes its documented default; the returned
// warnings describe recoverable oddities in the input and never include missing fields.
func (cv Converter) Convert(c *Character) (character.State, []string) {
	warnings := append([]string(nil), c.Issues...)
	s := character.New(cv.Defaults)

	s.Name = c.Name.OrElse(character.UnknownValue)
	s.Ancestry = c.Ancestry.OrElse(character.UnknownValue)
	s.Class = c.Class.OrElse(character.UnknownValue)
	s.Background = c.Background.OrElse(character.UnknownValue)
	s.Alignment = c.Alignment.OrElse(character.DefaultAlignment)
	s.Level = c.Level.OrElse(1)
	if s.Level < 1 {
		warnings = append(warnings, fmt.Sprintf("level %d raised to 1", s.Level))
		s.Level = 1
	}
	s.Languages = string(c.Languages)
	s.Notes = string(c.Notes)

	s.Abilities = character.NewAbilities(abilityScores(c.Stats))

	s.MaxHitPoints = c.MaxHitPoints.OrElse(0)
	s.HitPoints = s.MaxHitPoints
	s.CurrentXP = c.CurrentXP.OrElse(c.XP.OrElse(0))
	s.XPToNextLevel = c.XPToNextLevel.OrElse(c.TotalXP.OrElse(s.Level * character.XPPerLevel))
	s.LuckTokenUsed = bool(c.LuckTokenUsed)
	s.ACBonus = c.ACBonus.OrElse(0)
	for weapon, bonus := range c.WeaponBonuses {
		if bonus.Set {
			s.WeaponBonuses[weapon] = bonus.Value
		}
	}

	var coinWarnings []string
	s.Coins, coinWarnings = coins(c)
	warnings = append(warnings, coinWarnings...)

	s.Traits = traits(c)
	s.Talents = talents(c)

	for i, g := range c.Gear {
		items, w := cv.convertGear(g, i)
		s.Inventory = append(s.Inventory, items...)
		warnings = append(warnings, w...)
	}

	s.Spells = cv.spells(c.SpellsKnown.String())

	if c.Shop != nil {
		var shopWarnings []string
		s.Shop, shopWarnings = cv.shop(c.Shop)
		warnings = append(warnings, shopWarnings...)
	}

	log := cv.logger()
	for _, w := range warnings {
		log.Warn("import warning", zap.String("character", s.Name), zap.String("detail", w))
	}
	log.Info("character imported",
		zap.String("character", s.Name),
		zap.Int("items", len(s.Inventory)),
		zap.Int("spells", len(s.Spells)),
		zap.Int("talents", len(s.Talents)),
		zap.Int("warnings", len(warnings)),
	)
	return s, warnings
}

func (cv Converter) logger() *zap.Logger {
	if cv.Logger == nil {
		return zap.NewNop()
	}
	return cv.Logger
}

// Import parses data and converts it.
//
// Postcondition: either a complete sheet or a non-nil error wrapping ErrInvalidJSON.
func Import(data []byte, cv Converter) (character.State, []string, error) {
	c, err := Parse(data)
	if err != nil {
		return character.State{}, nil, err
	}
	s, warnings := cv.Convert(c)
	return s, warnings, nil
}

func abilityScores(stats map[string]FlexInt) map[character.AbilityKey]int {
	scores := make(map[character.AbilityKey]int, len(stats))
	for key, v := range stats {
		k, ok := character.ParseAbilityKey(key)
		if !ok || !v.Set {
			continue
		}
		scores[k] = v.Value
	}
	return scores
}

func coins(c *Character) (inventory.Coins, []string) {
	var warnings []string
	get := func(label string, f FlexInt) int {
		v := f.OrElse(0)
		if v < 0 {
			warnings = append(warnings, fmt.Sprintf("negative %s %d treated as 0", label, v))
			return 0
		}
		return v
	}
	return inventory.Coins{
		Gold:   get("gold", c.Gold),
		Silver: get("silver", c.Silver),
		Copper: get("copper", c.Copper),
	}, warnings
}

func toBonus(b BonusRecord) character.BonusRecord {
	return character.BonusRecord{
		ID:             b.ID.String(),
		Name:           b.Name.String(),
		BonusName:      b.BonusName.String(),
		SourceType:     b.SourceType.String(),
		SourceName:     b.SourceName.String(),
		SourceCategory: b.SourceCategory.String(),
		BonusTo:        b.BonusTo.String(),
		BonusAmount:    b.BonusAmount.Ptr(),
		GainedAtLevel:  b.GainedAtLevel.Ptr(),
	}
}

func fromBonus(b character.BonusRecord) BonusRecord {
	return BonusRecord{
		ID:             FlexString(b.ID),
		Name:           FlexString(b.Name),
		BonusName:      FlexString(b.BonusName),
		SourceType:     FlexString(b.SourceType),
		SourceName:     FlexString(b.SourceName),
		SourceCategory: FlexString(b.SourceCategory),
		BonusTo:        FlexString(b.BonusTo),
		BonusAmount:    intFromPtr(b.BonusAmount),
		GainedAtLevel:  intFromPtr(b.GainedAtLevel),
	}
}

// traits keeps the raw bonus records, preferring an explicit traits list.
func traits(c *Character) []character.BonusRecord {
	src := c.Traits
	if src == nil {
		src = c.Bonuses
	}
	if len(src) == 0 {
		return nil
	}
	out := make([]character.BonusRecord, len(src))
	for i, b := range src {
		rec := toBonus(b)
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("imported-%d", i)
		}
		out[i] = rec
	}
	return out
}

// talents prefers an explicit talents list. Without one, talents are built from the bonus
// records and then from the rolled talents in the level history.
func talents(c *Character) []character.Talent {
	var out []character.Talent
	if c.Talents != nil {
		for i, t := range c.Talents {
			desc := strings.TrimSpace(string(t.Description))
			if desc == "" {
				continue
			}
			tal := character.Talent{
				ID:          t.ID.OrElse(fmt.Sprintf("imported-talent-%d", i)),
				Name:        t.Name.String(),
				Level:       t.Level.OrElse(0),
				Description: desc,
			}
			if t.Bonus != nil {
				b := toBonus(*t.Bonus)
				tal.Bonus = &b
			}
			out = append(out, tal)
		}
		return out
	}

	for i, b := range c.Bonuses {
		rec := toBonus(b)
		name := rec.Name
		if name == "" {
			name = rec.BonusName
		}
		out = append(out, character.Talent{
			ID:          fmt.Sprintf("bonus-%d", i),
			Name:        name,
			Level:       b.GainedAtLevel.OrElse(0),
			Description: DescribeBonus(rec),
			Bonus:       &rec,
		})
	}

	rolled := append([]LevelRecord(nil), c.Levels...)
	if c.AmbitionTalentLevel != nil {
		rolled = append(rolled, *c.AmbitionTalentLevel)
	}
	n := 0
	add := func(level int, name, desc FlexString) {
		d := strings.TrimSpace(string(desc))
		if d == "" {
			return
		}
		out = append(out, character.Talent{
			ID:          fmt.Sprintf("imported-talent-%d", n),
			Name:        name.String(),
			Level:       level,
			Description: d,
		})
		n++
	}
	for _, l := range rolled {
		add(l.Level.OrElse(0), l.TalentRolledName, l.TalentRolledDesc)
		add(l.Level.OrElse(0), l.Rolled12ChosenTalentName, l.Rolled12ChosenTalentDesc)
	}
	return out
}

// spells resolves a comma-separated name list against the spell database.
func (cv Converter) spells(known string) []character.Spell {
	if known == "" || known == noSpells {
		return nil
	}
	var out []character.Spell
	for _, part := range strings.Split(known, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		sp := character.Spell{
			ID:     fmt.Sprintf("spell-%d", len(out)),
			Name:   name,
			Active: true,
		}
		if def, ok := cv.Spells.Lookup(name); ok {
			sp.Name = def.Name
			sp.Tier = def.Tier
			sp.Duration = def.Duration
			sp.Range = def.Range
			sp.Description = def.Description
		} else {
			sp.Tier = PlaceholderTier
			sp.Description = PlaceholderDescription
		}
		out = append(out, sp)
	}
	return out
}

// shop replaces the shop wholesale. Missing markups take the converter defaults.
func (cv Converter) shop(r *ShopRecord) (character.Shop, []string) {
	var warnings []string
	sh := character.Shop{
		BuyMarkup:  r.BuyMarkup.Or(cv.Defaults.BuyMarkup),
		SellMarkup: r.SellMarkup.Or(cv.Defaults.SellMarkup),
	}
	for i, raw := range r.ShopItems {
		var it inventory.Item
		if err := json.Unmarshal(raw, &it); err != nil {
			warnings = append(warnings, fmt.Sprintf("shop item %d skipped: %v", i, err))
			continue
		}
		if it.ID == "" {
			it.ID = fmt.Sprintf("shop-item-%d", i)
		}
		if !inventory.IsValidType(it.Type) {
			it.Type = cv.Catalog.InferType(it.Name, it.Type)
		}
		if err := it.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("shop item %d skipped: %v", i, err))
			continue
		}
		sh.Items = append(sh.Items, it)
	}
	return sh, warnings
}
