package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
)

func TestAbilityModifier_Examples(t *testing.T) {
	cases := map[int]int{1: -5, 3: -4, 8: -1, 9: -1, 10: 0, 11: 0, 12: 1, 18: 4, 30: 10}
	for score, want := range cases {
		assert.Equal(t, want, character.AbilityModifier(score), "score %d", score)
	}
}

func TestProperty_AbilityModifier_Monotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(1, 30).Draw(t, "a")
		b := rapid.IntRange(a, 30).Draw(t, "b")
		if character.AbilityModifier(a) > character.AbilityModifier(b) {
			t.Fatalf("modifier(%d) > modifier(%d)", a, b)
		}
	})
}

func TestProperty_AbilityModifier_IsFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.IntRange(-50, 80).Draw(t, "score")
		m := character.AbilityModifier(s)
		if 2*m > s-10 || 2*m+2 <= s-10 {
			t.Fatalf("modifier %d is not floor((%d-10)/2)", m, s)
		}
	})
}

func TestFormatModifier(t *testing.T) {
	assert.Equal(t, "+2", character.FormatModifier(2))
	assert.Equal(t, "+0", character.FormatModifier(0))
	assert.Equal(t, "-1", character.FormatModifier(-1))
}

func TestDefaultAbilities_AllTen(t *testing.T) {
	a := character.DefaultAbilities()
	require.Len(t, a, 6)
	for _, ab := range a.Ordered() {
		assert.Equal(t, 10, ab.Score)
		assert.NotEmpty(t, ab.Name)
	}
}

func TestNewAbilities_FillsDefaults(t *testing.T) {
	a := character.NewAbilities(map[character.AbilityKey]int{character.STR: 15, character.CHA: 0, "LCK": 12})
	assert.Equal(t, 15, a.Score(character.STR))
	assert.Equal(t, 10, a.Score(character.CHA))
	assert.Len(t, a, 6)
	assert.Equal(t, 2, a.Modifier(character.STR))
}

func TestAbilities_Ordered(t *testing.T) {
	keys := []character.AbilityKey{}
	for _, ab := range (character.Abilities{}).Ordered() {
		keys = append(keys, ab.ShortName)
	}
	assert.Equal(t, character.AbilityOrder, keys)
}

func TestParseAbilityKey(t *testing.T) {
	k, ok := character.ParseAbilityKey("dex")
	assert.True(t, ok)
	assert.Equal(t, character.DEX, k)
	k, ok = character.ParseAbilityKey("Wisdom")
	assert.True(t, ok)
	assert.Equal(t, character.WIS, k)
	_, ok = character.ParseAbilityKey("luck")
	assert.False(t, ok)
}
