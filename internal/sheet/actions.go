// Package sheet holds the character sheet state container: the actions that change a
// sheet, the pure reducer that applies them and the Store that serializes dispatch.
package sheet

import (
	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// Action is one requested change to a sheet.
type Action interface {
	// ActionName is a short lowercase label used in logs and error titles.
	ActionName() string
}

// SetAttribute assigns an identity field (name, ancestry, class, background, alignment, level).
type SetAttribute struct {
	Name  string
	Value string
}

// UpdateAbilities sets the listed ability scores; unlisted abilities keep their score.
type UpdateAbilities struct {
	Scores map[character.AbilityKey]int
}

// UpdateLanguages replaces the free-text language list.
type UpdateLanguages struct {
	Languages string
}

// UpdateXP sets current XP and the XP needed for the next level.
type UpdateXP struct {
	Current int
	ToNext  int
}

// ToggleLuckToken flips the luck token between available and spent.
type ToggleLuckToken struct{}

// AddTalent appends a talent. An empty ID is filled by the Store.
type AddTalent struct {
	Talent character.Talent
}

// UpdateTalent replaces the talent with the same ID.
type UpdateTalent struct {
	Talent character.Talent
}

// RemoveTalent deletes a talent.
type RemoveTalent struct {
	ID string
}

// UpdateHP sets current hit points.
type UpdateHP struct {
	HP int
}

// UpdateMaxHP sets maximum hit points.
type UpdateMaxHP struct {
	Max int
}

// UpdateACBonus sets the flat AC bonus.
type UpdateACBonus struct {
	Bonus int
}

// UpdateWeaponBonuses replaces the per-weapon attack bonus overrides.
type UpdateWeaponBonuses struct {
	Bonuses map[string]int
}

// AddSpell appends a spell. An empty ID is filled by the Store.
type AddSpell struct {
	Spell character.Spell
}

// UpdateSpell replaces the spell with the same ID.
type UpdateSpell struct {
	Spell character.Spell
}

// RemoveSpell deletes a spell.
type RemoveSpell struct {
	ID string
}

// ToggleSpell flips a spell between available and lost.
type ToggleSpell struct {
	ID string
}

// AddItem appends an inventory item. An empty ID is filled by the Store.
type AddItem struct {
	Item inventory.Item
}

// UpdateItem replaces the inventory item with the same ID.
type UpdateItem struct {
	Item inventory.Item
}

// RemoveItem deletes an inventory item.
type RemoveItem struct {
	ID string
}

// UseItem spends one unit of a tracked consumable, removing it when the last unit goes.
type UseItem struct {
	ID string
}

// ToggleEquipped flips an item's equipped flag.
type ToggleEquipped struct {
	ID string
}

// UpdateCoins replaces the purse.
type UpdateCoins struct {
	Coins inventory.Coins
}

// UpdateNotes replaces the notes text.
type UpdateNotes struct {
	Notes string
}

// ReplaceState swaps in a whole sheet, as an import does.
type ReplaceState struct {
	State character.State
}

// BuyItem buys a copy of a shop item at the buy markup. An empty NewID is filled by the Store.
type BuyItem struct {
	ShopItemID string
	NewID      string
}

// SellItem sells an inventory item at the sell markup.
type SellItem struct {
	ItemID string
}

// AddShopItem adds an item to the shop stock. An empty ID is filled by the Store.
type AddShopItem struct {
	Item inventory.Item
}

// UpdateShopItem replaces the shop item with the same ID.
type UpdateShopItem struct {
	Item inventory.Item
}

// RemoveShopItem deletes a shop item.
type RemoveShopItem struct {
	ID string
}

// SetMarkups sets the shop's buy and sell percentages.
type SetMarkups struct {
	Buy  int
	Sell int
}

func (SetAttribute) ActionName() string        { return "set attribute" }
func (UpdateAbilities) ActionName() string     { return "update abilities" }
func (UpdateLanguages) ActionName() string     { return "update languages" }
func (UpdateXP) ActionName() string            { return "update xp" }
func (ToggleLuckToken) ActionName() string     { return "toggle luck token" }
func (AddTalent) ActionName() string           { return "add talent" }
func (UpdateTalent) ActionName() string        { return "update talent" }
func (RemoveTalent) ActionName() string        { return "remove talent" }
func (UpdateHP) ActionName() string            { return "update hp" }
func (UpdateMaxHP) ActionName() string         { return "update max hp" }
func (UpdateACBonus) ActionName() string       { return "update ac bonus" }
func (UpdateWeaponBonuses) ActionName() string { return "update weapon bonuses" }
func (AddSpell) ActionName() string            { return "add spell" }
func (UpdateSpell) ActionName() string         { return "update spell" }
func (RemoveSpell) ActionName() string         { return "remove spell" }
func (ToggleSpell) ActionName() string         { return "toggle spell" }
func (AddItem) ActionName() string             { return "add item" }
func (UpdateItem) ActionName() string          { return "update item" }
func (RemoveItem) ActionName() string          { return "remove item" }
func (UseItem) ActionName() string             { return "use item" }
func (ToggleEquipped) ActionName() string      { return "toggle equipped" }
func (UpdateCoins) ActionName() string         { return "update coins" }
func (UpdateNotes) ActionName() string         { return "update notes" }
func (ReplaceState) ActionName() string        { return "replace state" }
func (BuyItem) ActionName() string             { return "buy item" }
func (SellItem) ActionName() string            { return "sell item" }
func (AddShopItem) ActionName() string         { return "add shop item" }
func (UpdateShopItem) ActionName() string      { return "update shop item" }
func (RemoveShopItem) ActionName() string      { return "remove shop item" }
func (SetMarkups) ActionName() string          { return "set markups" }
