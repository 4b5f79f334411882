package inventory

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CopperPerSilver is the number of copper pieces in one silver piece.
	CopperPerSilver = 10
	// CopperPerGold is the number of copper pieces in one gold piece (10 silver).
	CopperPerGold = 100
)

// External single-letter denomination codes used by gear records.
const (
	CodeGold   = "gp"
	CodeSilver = "sp"
	CodeCopper = "cp"
)

// ErrInsufficientFunds is returned when a purse cannot cover a price.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNegativeBalance is returned when a copper total below zero would be constructed.
var ErrNegativeBalance = errors.New("negative coin balance")

// Coins is a three-denomination purse or price.
//
// Invariant: after Normalize, 0 <= Silver <= 9 and 0 <= Copper <= 9.
type Coins struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Copper int `json:"copper"`
}

// ToCopper returns the canonical copper total of c.
//
// Postcondition: result == Gold*100 + Silver*10 + Copper.
func ToCopper(c Coins) int {
	return c.Gold*CopperPerGold + c.Silver*CopperPerSilver + c.Copper
}

// FromCopper decomposes a copper total into normalized coins.
//
// Precondition: total >= 0.
// Postcondition: ToCopper(result) == total; 0 <= Silver, Copper <= 9.
// Returns ErrNegativeBalance when total < 0.
func FromCopper(total int) (Coins, error) {
	if total < 0 {
		return Coins{}, fmt.Errorf("inventory: FromCopper(%d): %w", total, ErrNegativeBalance)
	}
	remainder := total % CopperPerGold
	return Coins{
		Gold:   total / CopperPerGold,
		Silver: remainder / CopperPerSilver,
		Copper: remainder % CopperPerSilver,
	}, nil
}

// Normalize re-expresses c with silver and copper in the 0–9 range.
// Editing may leave a purse transiently denormalized; arithmetic always normalizes first.
func Normalize(c Coins) (Coins, error) {
	return FromCopper(ToCopper(c))
}

// CanAfford reports whether purse covers price.
func CanAfford(purse, price Coins) bool {
	return ToCopper(purse) >= ToCopper(price)
}

// Spend deducts price from purse.
//
// Postcondition: on success ToCopper(result) == ToCopper(purse) - ToCopper(price) and result is
// normalized; returns ErrInsufficientFunds when !CanAfford(purse, price).
func Spend(purse, price Coins) (Coins, error) {
	if !CanAfford(purse, price) {
		return Coins{}, fmt.Errorf("inventory: spending %s from %s: %w",
			FormatCoins(price), FormatCoins(purse), ErrInsufficientFunds)
	}
	return FromCopper(ToCopper(purse) - ToCopper(price))
}

// Add returns the normalized sum of purse and amount.
func Add(purse, amount Coins) (Coins, error) {
	return FromCopper(ToCopper(purse) + ToCopper(amount))
}

// ApplyMarkup adjusts price by percent, flooring to whole copper.
// A markup of -100 or below yields zero; the result is never negative.
//
// Postcondition: ToCopper(result) == floor(ToCopper(price) * (100+percent) / 100), clamped at 0.
func ApplyMarkup(price Coins, percent int) Coins {
	base := ToCopper(price)
	factor := 100 + percent
	if base <= 0 || factor <= 0 {
		return Coins{}
	}
	c, _ := FromCopper(base * factor / 100)
	return c
}

// CoinsFromCost converts an external single-denomination cost into coins.
// Unknown or empty codes are treated as gold, which is what the generator emits.
func CoinsFromCost(cost int, code string) Coins {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case CodeSilver:
		return Coins{Silver: cost}
	case CodeCopper:
		return Coins{Copper: cost}
	default:
		return Coins{Gold: cost}
	}
}

// CostOf encodes c as the external single-denomination pair, preferring gold, then silver, then copper.
// Mixed-denomination values keep only the preferred denomination.
func CostOf(c Coins) (int, string) {
	switch {
	case c.Gold != 0:
		return c.Gold, CodeGold
	case c.Silver != 0:
		return c.Silver, CodeSilver
	default:
		return c.Copper, CodeCopper
	}
}

// FormatCoins returns a compact price string such as "2g 5s".
// Zero-valued denominations are omitted; an empty purse renders as "0c".
func FormatCoins(c Coins) string {
	var parts []string
	if c.Gold != 0 {
		parts = append(parts, fmt.Sprintf("%dg", c.Gold))
	}
	if c.Silver != 0 {
		parts = append(parts, fmt.Sprintf("%ds", c.Silver))
	}
	if c.Copper != 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dc", c.Copper))
	}
	return strings.Join(parts, " ")
}
