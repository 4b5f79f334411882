package shadowdark_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/importer/shadowdark"
)

func sampleState() character.State {
	s := character.New(character.Defaults{BuyMarkup: 10, SellMarkup: -50})
	s.Name = "Ava Brightwater"
	s.Ancestry = "Elf"
	s.Class = "Fighter"
	s.Level = 2
	s.Abilities = character.NewAbilities(map[character.AbilityKey]int{character.STR: 16, character.DEX: 14})
	s.MaxHitPoints = 12
	s.HitPoints = 5
	s.CurrentXP = 6
	s.XPToNextLevel = 20
	s.ACBonus = 1
	s.Coins = inventory.Coins{Gold: 3, Silver: 2, Copper: 1}
	s.WeaponBonuses["Longsword"] = 1
	s.Talents = []character.Talent{
		{ID: "t1", Name: "Mastery", Level: 1, Description: "Class: Fighter | Bonus to: Longsword | +1 | Level 1"},
		{ID: "t2", Description: "Never gets lost"},
	}
	s.Spells = []character.Spell{{ID: "spell-0", Name: "Light"}, {ID: "spell-1", Name: "Magic Missile"}}
	s.Inventory = []inventory.Item{
		{ID: "i1", Name: "Longsword", Type: inventory.TypeWeapon, Slots: 1, Value: inventory.Coins{Gold: 9}, Damage: "1d8", WeaponAbility: "STR"},
		{ID: "i2", Name: "Leather armor", Type: inventory.TypeArmor, Slots: 1, Value: inventory.Coins{Gold: 10}, Equipped: true, ArmorAC: 11},
		{ID: "i3", Name: "Arrows", Type: inventory.TypeConsumable, Slots: 1, Value: inventory.Coins{Copper: 5}, TotalUnits: 20, CurrentUnits: 7, UnitsPerSlot: 20},
	}
	s.Shop.Items = []inventory.Item{{ID: "s1", Name: "Lantern", Type: inventory.TypeGear, Slots: 1, Value: inventory.Coins{Gold: 5}}}
	return s
}

func TestExport_Fields(t *testing.T) {
	out := shadowdark.Exporter{}.Export(sampleState())

	assert.Equal(t, "Ava Brightwater", out.Name.String())
	require.Len(t, out.Stats, 6)
	assert.Equal(t, shadowdark.Int(16), out.Stats["STR"])
	assert.Equal(t, shadowdark.Int(14), out.Stats["DEX"])
	assert.Equal(t, shadowdark.Int(10), out.Stats["CHA"])
	assert.Equal(t, out.Stats, out.RolledStats)
	assert.Equal(t, shadowdark.Int(2), out.Level)
	assert.NotNil(t, out.Levels)
	assert.Empty(t, out.Levels)
	require.NotNil(t, out.AmbitionTalentLevel)
	assert.Equal(t, shadowdark.Int(1), out.AmbitionTalentLevel.Level)
	assert.Equal(t, shadowdark.Int(6), out.CurrentXP)
	assert.Equal(t, shadowdark.Int(20), out.XPToNextLevel)
	assert.Equal(t, shadowdark.Int(12), out.MaxHitPoints)
	// leather armor 11 + DEX 2 (light armor) + acBonus 1
	assert.Equal(t, shadowdark.Int(14), out.ArmorClass)
	assert.Equal(t, shadowdark.Int(16), out.GearSlotsTotal)
	assert.Equal(t, shadowdark.Int(3), out.GearSlotsUsed)
	assert.Equal(t, "Light, Magic Missile", out.SpellsKnown.String())
	assert.Equal(t, shadowdark.Int(3), out.Gold)
	assert.Equal(t, shadowdark.Int(2), out.Silver)
	assert.Equal(t, shadowdark.Int(1), out.Copper)
	assert.Equal(t, shadowdark.Int(1), out.WeaponBonuses["Longsword"])
	require.NotNil(t, out.Shop)
	assert.Len(t, out.Shop.ShopItems, 1)
	assert.Equal(t, shadowdark.Int(10), out.Shop.BuyMarkup)
	assert.Equal(t, shadowdark.Int(-50), out.Shop.SellMarkup)
}

func TestExport_ArmorClassUsesRule(t *testing.T) {
	out := shadowdark.Exporter{Rule: character.NoDex{}}.Export(sampleState())
	assert.Equal(t, shadowdark.Int(12), out.ArmorClass)
}

func TestExport_Gear(t *testing.T) {
	out := shadowdark.Exporter{}.Export(sampleState())
	require.Len(t, out.Gear, 3)

	sword := out.Gear[0]
	assert.Equal(t, "i1", sword.InstanceID.String())
	assert.Equal(t, shadowdark.Int(9), sword.Cost)
	assert.Equal(t, "gp", sword.Currency.String())
	assert.Equal(t, "1d8", sword.Damage.String())
	assert.False(t, sword.AttackBonus.Set)
	assert.False(t, sword.TotalUnits.Set)

	arrows := out.Gear[2]
	assert.Equal(t, "cp", arrows.Currency.String())
	assert.Equal(t, shadowdark.Int(7), arrows.CurrentUnits)
	assert.Equal(t, shadowdark.Int(20), arrows.UnitsPerSlot)
}

func TestExport_BonusesFromTalents(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	out := shadowdark.Exporter{Logger: zap.New(core)}.Export(sampleState())

	require.Len(t, out.Bonuses, 2)
	parsed := out.Bonuses[0]
	assert.Equal(t, "Class", parsed.SourceType.String())
	assert.Equal(t, "Fighter", parsed.SourceName.String())
	assert.Equal(t, "Longsword", parsed.BonusTo.String())
	assert.Equal(t, shadowdark.Int(1), parsed.BonusAmount)
	assert.Equal(t, "Mastery", parsed.Name.String())

	degraded := out.Bonuses[1]
	assert.Equal(t, shadowdark.OtherSourceType, degraded.SourceType.String())
	assert.Equal(t, shadowdark.UnknownSource, degraded.SourceName.String())
	assert.Equal(t, shadowdark.Int(1), degraded.GainedAtLevel)

	entries := logs.FilterMessage("talent exported as generic bonus").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "t2", entries[0].ContextMap()["talent"])
}

func TestExport_StructuredBonusIsVerbatim(t *testing.T) {
	s := sampleState()
	amount := 2
	s.Talents = []character.Talent{{
		ID:          "t1",
		Description: "edited text",
		Bonus:       &character.BonusRecord{Name: "Sharp", SourceType: "Talent", SourceCategory: "Ability", BonusTo: "INT", BonusAmount: &amount},
	}}
	out := shadowdark.Exporter{}.Export(s)
	require.Len(t, out.Bonuses, 1)
	assert.Equal(t, "Talent", out.Bonuses[0].SourceType.String())
	assert.Equal(t, "Ability", out.Bonuses[0].SourceCategory.String())
	assert.Equal(t, shadowdark.Int(2), out.Bonuses[0].BonusAmount)
}

func TestMarshal_Shape(t *testing.T) {
	data, err := shadowdark.Marshal(shadowdark.Exporter{}.Export(sampleState()), 2)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"Ava Brightwater\"")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{
		"name", "stats", "rolledStats", "ancestry", "class", "level", "levels", "currentXP",
		"xpToNextLevel", "ambitionTalentLevel", "title", "alignment", "background", "deity",
		"maxHitPoints", "armorClass", "acBonus", "gearSlotsTotal", "gearSlotsUsed", "bonuses",
		"talents", "traits", "gear", "spellsKnown", "languages", "gold", "silver", "copper",
		"weaponBonuses", "luckTokenUsed", "notes", "shop",
	} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "hitPoints")
	gear := doc["gear"].([]any)[0].(map[string]any)
	assert.NotContains(t, gear, "armorAC")
	assert.NotContains(t, gear, "quantity")

	compact, err := shadowdark.Marshal(shadowdark.Exporter{}.Export(sampleState()), 0)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestRoundTrip_ExportThenImport(t *testing.T) {
	orig := sampleState()
	data, err := shadowdark.Marshal(shadowdark.Exporter{}.Export(orig), 2)
	require.NoError(t, err)

	back, warnings, err := shadowdark.Import(data, newConverter())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, orig.Name, back.Name)
	assert.Equal(t, orig.Abilities.Scores(), back.Abilities.Scores())
	assert.Equal(t, orig.Coins, back.Coins)
	assert.Equal(t, orig.MaxHitPoints, back.HitPoints)
	assert.Equal(t, orig.CurrentXP, back.CurrentXP)
	assert.Equal(t, orig.WeaponBonuses, back.WeaponBonuses)
	assert.Equal(t, orig.Inventory, back.Inventory)
	assert.Equal(t, orig.Shop, back.Shop)
	require.Len(t, back.Talents, 2)
	assert.Equal(t, orig.Talents[0].Description, back.Talents[0].Description)
	require.Len(t, back.Spells, 2)
	assert.Equal(t, "Magic Missile", back.Spells[1].Name)
}
