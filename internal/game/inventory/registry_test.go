package inventory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

func TestDefaultCatalog_Sizes(t *testing.T) {
	w, a, s, ty := inventory.DefaultCatalog().Sizes()
	assert.Equal(t, 14, w)
	assert.Equal(t, 10, a)
	assert.Equal(t, 4, s)
	assert.Equal(t, 12, ty)
}

func TestCatalog_Weapon_Known(t *testing.T) {
	c := inventory.DefaultCatalog()
	w, ok := c.Weapon("Longsword")
	require.True(t, ok)
	assert.Equal(t, "1d8", w.Damage)
	assert.Equal(t, inventory.AbilitySTR, w.Ability)

	w, ok = c.Weapon("Longbow")
	require.True(t, ok)
	assert.Equal(t, inventory.AbilityDEX, w.Ability)
}

func TestCatalog_Weapon_UnknownFallsBack(t *testing.T) {
	w, ok := inventory.DefaultCatalog().Weapon("Rubber Chicken")
	assert.False(t, ok)
	assert.Equal(t, inventory.WeaponStats{Damage: "1d6", Ability: "STR"}, w)
}

func TestCatalog_Weapon_CaseSensitive(t *testing.T) {
	_, ok := inventory.DefaultCatalog().Weapon("longsword")
	assert.False(t, ok)
}

func TestCatalog_ArmorAndShield(t *testing.T) {
	c := inventory.DefaultCatalog()
	ac, ok := c.Armor("Chainmail")
	require.True(t, ok)
	assert.Equal(t, 14, ac)
	_, ok = c.Armor("Cardboard")
	assert.False(t, ok)

	b, ok := c.Shield("Tower shield")
	require.True(t, ok)
	assert.Equal(t, 3, b)
}

func TestCatalog_InferType(t *testing.T) {
	c := inventory.DefaultCatalog()
	cases := []struct{ name, tag, want string }{
		{"Longsword", "weapon", inventory.TypeWeapon},
		{"Torch", "weapon", inventory.TypeWeapon},
		{"Torch", "", inventory.TypeConsumable},
		{"Torch", "gear", inventory.TypeConsumable},
		{"Oil, flask", "sundry", inventory.TypeConsumable},
		{"Shield", "", inventory.TypeShield},
		{"Half plate", "", inventory.TypeArmor},
		{"Tower shield", "Gear", inventory.TypeShield},
		{"Gold idol", "treasure", inventory.TypeTreasure},
		{"Rope, 60'", "", inventory.TypeGear},
		{"Longbow", "", inventory.TypeWeapon},
		{"Dagger", "gear", inventory.TypeWeapon},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.InferType(tc.name, tc.tag), "%s/%s", tc.name, tc.tag)
	}
}

func TestParseCatalog_RejectsBadDamage(t *testing.T) {
	_, err := inventory.ParseCatalog([]byte(`
weapons:
  - name: Noodle
    damage: lots
    ability: STR
default_weapon:
  damage: 1d6
  ability: STR
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Noodle")
}

func TestParseCatalog_RejectsBadYAML(t *testing.T) {
	_, err := inventory.ParseCatalog([]byte("weapons: [unclosed"))
	assert.Error(t, err)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weapons:
  - name: Sling
    damage: 1d4
    ability: DEX
armor:
  - name: Hide
    ac: 12
types:
  Sling stones: consumable
default_weapon:
  damage: 1d4
  ability: STR
`), 0644))

	c, err := inventory.LoadCatalog(path)
	require.NoError(t, err)
	w, ok := c.Weapon("Sling")
	require.True(t, ok)
	assert.Equal(t, "DEX", w.Ability)
	assert.Equal(t, inventory.TypeConsumable, c.InferType("Sling stones", ""))
	assert.Equal(t, inventory.TypeArmor, c.InferType("Hide", ""))
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := inventory.LoadCatalog(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestProperty_InferType_AlwaysValid(t *testing.T) {
	c := inventory.DefaultCatalog()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		tag := rapid.SampledFrom([]string{"", "gear", "weapon", "armor", "shield", "consumable", "treasure", "misc"}).Draw(t, "tag")
		got := c.InferType(name, tag)
		if !inventory.IsValidType(got) {
			t.Fatalf("InferType(%q, %q) = %q", name, tag, got)
		}
		if tag == "weapon" && got != inventory.TypeWeapon {
			t.Fatalf("weapon tag reclassified as %q", got)
		}
	})
}
