package inventory

import (
	"errors"
	"fmt"
)

// MinSlotCapacity is the gear-slot capacity of a character whose STR score is below it.
const MinSlotCapacity = 10

// ErrNotConsumable is returned when a unit operation targets an item that is not unit-tracked.
var ErrNotConsumable = errors.New("item is not a unit-tracked consumable")

// ErrItemNotFound is returned when an item id is not present in an item list.
var ErrItemNotFound = errors.New("item not found")

// TotalSlotsAvailable returns the gear-slot capacity granted by a STR score.
//
// Postcondition: result == max(strScore, MinSlotCapacity).
func TotalSlotsAvailable(strScore int) int {
	if strScore < MinSlotCapacity {
		return MinSlotCapacity
	}
	return strScore
}

// SlotsUsed returns the total slots occupied by items, equipped or not.
func SlotsUsed(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Slots
	}
	return total
}

// IsTracked reports whether it carries unit bookkeeping.
func IsTracked(it Item) bool {
	return it.UnitsPerSlot > 0
}

// RemainingUnits returns the stack-aware number of uses left in it.
// Every slot but the last is a full sub-stack of UnitsPerSlot units; the last holds CurrentUnits.
//
// Postcondition: result == (Slots-1)*UnitsPerSlot + CurrentUnits for tracked items; CurrentUnits otherwise.
func RemainingUnits(it Item) int {
	if !IsTracked(it) || it.Slots < 1 {
		return it.CurrentUnits
	}
	return (it.Slots-1)*it.UnitsPerSlot + it.CurrentUnits
}

// UseConsumable spends one unit of it.
//
// Precondition: IsTracked(it).
// Postcondition: returns (nil, nil) when the stack is exhausted and the caller must remove the item;
// otherwise returns an updated copy with CurrentUnits decremented and Slots == ceil(CurrentUnits/UnitsPerSlot).
// Returns ErrNotConsumable when it is not unit-tracked.
func UseConsumable(it Item) (*Item, error) {
	if !IsTracked(it) {
		return nil, fmt.Errorf("inventory: using %q: %w", it.Name, ErrNotConsumable)
	}
	out := it
	out.CurrentUnits = it.CurrentUnits - 1
	if out.CurrentUnits < 0 {
		out.CurrentUnits = 0
	}
	out.Slots = ceilDiv(out.CurrentUnits, out.UnitsPerSlot)
	if out.Slots < 1 {
		return nil, nil
	}
	return &out, nil
}

// ExpandQuantity splits one stacked record into quantity independent items.
// Slots round up; TotalUnits and CurrentUnits round down, so remainders are dropped.
// Each copy tracks its share of units per slot when it has any current units.
//
// Postcondition: len(result) == max(quantity, 1); for quantity > 1 result[i].ID == "{it.ID}-{i}".
func ExpandQuantity(it Item, quantity int) []Item {
	if quantity <= 1 {
		return []Item{it}
	}
	out := make([]Item, quantity)
	for i := range out {
		cp := it
		cp.ID = fmt.Sprintf("%s-%d", it.ID, i)
		cp.Slots = ceilDiv(it.Slots, quantity)
		cp.TotalUnits = it.TotalUnits / quantity
		cp.CurrentUnits = it.CurrentUnits / quantity
		if cp.CurrentUnits > 0 {
			cp.UnitsPerSlot = cp.CurrentUnits
		}
		out[i] = cp
	}
	return out
}

// ceilDiv returns ceil(a/b) for a >= 0 and b > 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
