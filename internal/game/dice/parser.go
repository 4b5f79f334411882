package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned when a string is not dice notation.
var ErrInvalidNotation = errors.New("invalid dice notation")

// Limits on a single expression. Damage strings arrive in imported JSON, so anything larger is
// rejected rather than rolled.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count >= 1, Sides >= 2 after successful Parse.
type Expression struct {
	Raw      string // original input string
	Count    int    // number of dice
	Sides    int    // faces per die
	Modifier int    // flat modifier (may be negative)
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2". Surrounding whitespace is ignored.
//
// Postcondition: Returns a valid Expression or an error wrapping ErrInvalidNotation.
func Parse(expr string) (Expression, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Expression{}, fmt.Errorf("dice: empty expression: %w", ErrInvalidNotation)
	}
	s := strings.ToLower(raw)

	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in %q: %w", raw, ErrInvalidNotation)
	}

	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, ErrInvalidNotation)
		}
		if n > MaxDice {
			return Expression{}, fmt.Errorf("dice: more than %d dice in %q: %w", MaxDice, raw, ErrInvalidNotation)
		}
		count = n
	}

	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 || sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, ErrInvalidNotation)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, ErrInvalidNotation)
		}
	}

	return Expression{Raw: raw, Count: count, Sides: sides, Modifier: modifier}, nil
}

// IsNotation reports whether s parses as dice notation.
func IsNotation(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Bonus is a weapon damage bonus: either dice to roll or a flat integer.
type Bonus struct {
	Dice *Expression
	Flat int
}

// ParseBonus interprets a damage bonus string. Dice notation yields Dice; an integer yields Flat.
// An empty string is a zero flat bonus. Anything else is an error.
func ParseBonus(s string) (Bonus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bonus{}, nil
	}
	if e, err := Parse(s); err == nil {
		return Bonus{Dice: &e}, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return Bonus{}, fmt.Errorf("dice: damage bonus %q: %w", s, ErrInvalidNotation)
	}
	return Bonus{Flat: n}, nil
}
