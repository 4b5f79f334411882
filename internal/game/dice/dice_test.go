package dice_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
)

// seqSource returns the queued values in order, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3 [4, 5] +3 = 12", r.String())

	r = dice.RollResult{Expression: "1d8", Dice: []int{6}}
	assert.Equal(t, "1d8 [6] = 6", r.String())

	r = dice.RollResult{Dice: []int{2}, Modifier: -1}
	assert.Equal(t, "[2] -1 = 1", r.String())
}

func TestRollResult_String_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		expr := rapid.StringMatching(`[1-9]d[0-9]+[+-][0-9]+`).Draw(rt, "expression")
		ds := rapid.SliceOfN(rapid.IntRange(1, 20), 1, 10).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")
		r := dice.RollResult{Expression: expr, Dice: ds, Modifier: modifier}
		s := r.String()
		assert.True(rt, strings.HasPrefix(s, expr+" ["))
		assert.True(rt, strings.HasSuffix(s, fmt.Sprintf("= %d", r.Total())))
	})
}

func TestParse_Forms(t *testing.T) {
	cases := map[string]dice.Expression{
		"d20":    {Raw: "d20", Count: 1, Sides: 20},
		"1d8":    {Raw: "1d8", Count: 1, Sides: 8},
		"2d6+3":  {Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3},
		"4d8-2":  {Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2},
		" 1D12 ": {Raw: "1D12", Count: 1, Sides: 12},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "6", "xd6", "0d6", "1d1", "1d", "1d6+x", "d-4"} {
		_, err := dice.Parse(in)
		assert.True(t, errors.Is(err, dice.ErrInvalidNotation), "input %q", in)
	}
}

func TestParse_Limits(t *testing.T) {
	_, err := dice.Parse("100d1000")
	require.NoError(t, err)
	for _, in := range []string{"101d6", "999999999999999d6", "99999999999999999999d6", "1d1001", "2d99999999999999999999"} {
		_, err := dice.Parse(in)
		assert.True(t, errors.Is(err, dice.ErrInvalidNotation), "input %q", in)
		assert.False(t, dice.IsNotation(in), "input %q", in)
	}
}

func TestIsNotation(t *testing.T) {
	assert.True(t, dice.IsNotation("1d4"))
	assert.False(t, dice.IsNotation("2"))
}

func TestParseBonus(t *testing.T) {
	b, err := dice.ParseBonus("1d4")
	require.NoError(t, err)
	require.NotNil(t, b.Dice)
	assert.Equal(t, 4, b.Dice.Sides)

	b, err = dice.ParseBonus("+2")
	require.NoError(t, err)
	assert.Nil(t, b.Dice)
	assert.Equal(t, 2, b.Flat)

	b, err = dice.ParseBonus("")
	require.NoError(t, err)
	assert.Equal(t, dice.Bonus{}, b)

	_, err = dice.ParseBonus("lots")
	assert.Error(t, err)
}

func TestRoll_UsesSource(t *testing.T) {
	src := &seqSource{vals: []int{3, 0}}
	r := dice.Roll(dice.MustParse("2d6+1"), src)
	assert.Equal(t, []int{4, 1}, r.Dice)
	assert.Equal(t, 6, r.Total())
}

func TestRollExpr_InvalidNotation(t *testing.T) {
	_, err := dice.RollExpr("banana", &seqSource{vals: []int{0}})
	assert.Error(t, err)
}

func TestDoubled(t *testing.T) {
	d := dice.Doubled(dice.MustParse("1d8+2"))
	assert.Equal(t, 2, d.Count)
	assert.Equal(t, 8, d.Sides)
	assert.Equal(t, 2, d.Modifier)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestParseMode(t *testing.T) {
	m, ok := dice.ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, dice.Normal, m)
	m, ok = dice.ParseMode("advantage")
	assert.True(t, ok)
	assert.Equal(t, dice.Advantage, m)
	_, ok = dice.ParseMode("sideways")
	assert.False(t, ok)
}

func TestRollD20_Modes(t *testing.T) {
	r := dice.RollD20(dice.Normal, &seqSource{vals: []int{9, 15}})
	assert.Equal(t, []int{10}, r.Rolls)
	assert.Equal(t, 10, r.Kept)

	r = dice.RollD20(dice.Advantage, &seqSource{vals: []int{4, 15}})
	assert.Equal(t, 16, r.Kept)

	r = dice.RollD20(dice.Disadvantage, &seqSource{vals: []int{4, 15}})
	assert.Equal(t, 5, r.Kept)

	r = dice.RollD20(dice.Normal, &seqSource{vals: []int{19}})
	assert.True(t, r.Natural20())
}

func TestRollD20_Property_KeptInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 19).Draw(rt, "a")
		b := rapid.IntRange(0, 19).Draw(rt, "b")
		mode := rapid.SampledFrom([]dice.Mode{dice.Normal, dice.Advantage, dice.Disadvantage}).Draw(rt, "mode")
		r := dice.RollD20(mode, &seqSource{vals: []int{a, b}})
		if r.Kept < 1 || r.Kept > 20 {
			rt.Fatalf("kept %d out of range", r.Kept)
		}
		switch mode {
		case dice.Advantage:
			assert.Equal(rt, max(a, b)+1, r.Kept)
		case dice.Disadvantage:
			assert.Equal(rt, min(a, b)+1, r.Kept)
		default:
			assert.Equal(rt, a+1, r.Kept)
		}
	})
}

func TestLoggedRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(&seqSource{vals: []int{5}}, zap.New(core))
	res, err := r.RollExpr("1d8")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total())
	r.RollD20(dice.Normal)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "dice roll", logs.All()[0].Message)
	assert.Equal(t, "d20 roll", logs.All()[1].Message)
}

func TestLoggedRoller_ForTagsEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(&seqSource{vals: []int{0}}, zap.New(core)).For("Dagger attack")
	r.RollD20(dice.Advantage)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Dagger attack", logs.All()[0].ContextMap()["for"])
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Replays(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for range 100 {
		v := a.Intn(20)
		assert.Equal(t, v, b.Intn(20))
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 20)
	}
}

func TestSeededSource_SeedsDiffer(t *testing.T) {
	a, b := dice.NewSeededSource(1), dice.NewSeededSource(2)
	same := 0
	for range 50 {
		if a.Intn(1000) == b.Intn(1000) {
			same++
		}
	}
	assert.Less(t, same, 50)
}
