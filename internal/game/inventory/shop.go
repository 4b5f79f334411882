package inventory

import "fmt"

// BuyPrice returns what a shop item costs after the buy markup.
func BuyPrice(it Item, buyMarkup int) Coins {
	return ApplyMarkup(it.Value, buyMarkup)
}

// SellPrice returns what a shop pays for it after the sell markup.
func SellPrice(it Item, sellMarkup int) Coins {
	return ApplyMarkup(it.Value, sellMarkup)
}

// Buy purchases a copy of shopItem.
//
// Precondition: newID is non-empty and unique within the inventory the copy will join.
// Postcondition: on success the returned purse is reduced by BuyPrice and the returned item is an
// unequipped copy of shopItem with ID newID; on ErrInsufficientFunds the purse is returned unchanged.
func Buy(purse Coins, shopItem Item, buyMarkup int, newID string) (Coins, Item, error) {
	price := BuyPrice(shopItem, buyMarkup)
	left, err := Spend(purse, price)
	if err != nil {
		return purse, Item{}, fmt.Errorf("inventory: buying %q: %w", shopItem.Name, err)
	}
	bought := shopItem
	bought.ID = newID
	bought.Equipped = false
	return left, bought, nil
}

// Sell credits the purse with the sell price of it.
//
// Postcondition: returns the normalized new purse and the price received.
func Sell(purse Coins, it Item, sellMarkup int) (Coins, Coins, error) {
	price := SellPrice(it, sellMarkup)
	total, err := Add(purse, price)
	if err != nil {
		return purse, Coins{}, fmt.Errorf("inventory: selling %q: %w", it.Name, err)
	}
	return total, price, nil
}
