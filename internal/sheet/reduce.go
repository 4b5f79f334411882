package sheet

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// ErrUnknownAction is returned by Reduce for an action type it does not handle.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingID is returned when an action that creates an entry carries no ID.
var ErrMissingID = errors.New("new entry has no id")

// Outcome is what a successful action reports to the user. An empty Title means nothing to report.
type Outcome struct {
	Title  string
	Detail string
}

// Reduce applies a to s.
//
// Precondition: actions that create entries carry a non-empty ID.
// Postcondition: on error the returned state equals s; s itself is never mutated.
func Reduce(s character.State, a Action) (character.State, Outcome, error) {
	next := s.Clone()
	out, err := apply(&next, a)
	if err != nil {
		return s, Outcome{}, fmt.Errorf("%s: %w", a.ActionName(), err)
	}
	return next, out, nil
}

func apply(s *character.State, a Action) (Outcome, error) {
	switch a := a.(type) {
	case SetAttribute:
		return Outcome{}, s.SetAttribute(a.Name, a.Value)
	case UpdateAbilities:
		return Outcome{}, updateAbilities(s, a.Scores)
	case UpdateLanguages:
		s.Languages = a.Languages
	case UpdateXP:
		if a.Current < 0 || a.ToNext < 0 {
			return Outcome{}, errors.New("xp must not be negative")
		}
		s.CurrentXP, s.XPToNextLevel = a.Current, a.ToNext
	case ToggleLuckToken:
		s.LuckTokenUsed = !s.LuckTokenUsed

	case AddTalent:
		if a.Talent.ID == "" {
			return Outcome{}, ErrMissingID
		}
		s.Talents = append(s.Talents, a.Talent)
	case UpdateTalent:
		i := s.TalentIndex(a.Talent.ID)
		if i < 0 {
			return Outcome{}, fmt.Errorf("%q: %w", a.Talent.ID, character.ErrTalentNotFound)
		}
		s.Talents[i] = updatedTalent(s.Talents[i], a.Talent)
	case RemoveTalent:
		i := s.TalentIndex(a.ID)
		if i < 0 {
			return Outcome{}, fmt.Errorf("%q: %w", a.ID, character.ErrTalentNotFound)
		}
		s.Talents = append(s.Talents[:i], s.Talents[i+1:]...)

	case UpdateHP:
		s.HitPoints = min(max(a.HP, 0), s.MaxHitPoints)
	case UpdateMaxHP:
		if a.Max < 0 {
			return Outcome{}, errors.New("max hit points must not be negative")
		}
		s.MaxHitPoints = a.Max
		s.HitPoints = min(s.HitPoints, a.Max)
	case UpdateACBonus:
		s.ACBonus = a.Bonus
	case UpdateWeaponBonuses:
		s.WeaponBonuses = maps.Clone(a.Bonuses)
		if s.WeaponBonuses == nil {
			s.WeaponBonuses = map[string]int{}
		}

	case AddSpell:
		if a.Spell.ID == "" {
			return Outcome{}, ErrMissingID
		}
		s.Spells = append(s.Spells, a.Spell)
	case UpdateSpell:
		i := s.SpellIndex(a.Spell.ID)
		if i < 0 {
			return Outcome{}, fmt.Errorf("%q: %w", a.Spell.ID, character.ErrSpellNotFound)
		}
		s.Spells[i] = a.Spell
	case RemoveSpell:
		i := s.SpellIndex(a.ID)
		if i < 0 {
			return Outcome{}, fmt.Errorf("%q: %w", a.ID, character.ErrSpellNotFound)
		}
		s.Spells = append(s.Spells[:i], s.Spells[i+1:]...)
	case ToggleSpell:
		i := s.SpellIndex(a.ID)
		if i < 0 {
			return Outcome{}, fmt.Errorf("%q: %w", a.ID, character.ErrSpellNotFound)
		}
		s.Spells[i].Active = !s.Spells[i].Active

	case AddItem:
		if err := a.Item.Validate(); err != nil {
			return Outcome{}, err
		}
		s.Inventory = append(s.Inventory, a.Item)
	case UpdateItem:
		i, err := itemIndex(s.Inventory, a.Item.ID)
		if err != nil {
			return Outcome{}, err
		}
		if err := a.Item.Validate(); err != nil {
			return Outcome{}, err
		}
		s.Inventory[i] = a.Item
	case RemoveItem:
		i, err := itemIndex(s.Inventory, a.ID)
		if err != nil {
			return Outcome{}, err
		}
		s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
	case UseItem:
		return useItem(s, a.ID)
	case ToggleEquipped:
		i, err := itemIndex(s.Inventory, a.ID)
		if err != nil {
			return Outcome{}, err
		}
		s.Inventory[i].Equipped = !s.Inventory[i].Equipped

	case UpdateCoins:
		if a.Coins.Gold < 0 || a.Coins.Silver < 0 || a.Coins.Copper < 0 {
			return Outcome{}, inventory.ErrNegativeBalance
		}
		s.Coins = a.Coins
	case UpdateNotes:
		s.Notes = a.Notes
	case ReplaceState:
		*s = a.State.Clone()

	case BuyItem:
		return buyItem(s, a)
	case SellItem:
		return sellItem(s, a.ItemID)
	case AddShopItem:
		if err := a.Item.Validate(); err != nil {
			return Outcome{}, err
		}
		s.Shop.Items = append(s.Shop.Items, a.Item)
		return Outcome{Title: fmt.Sprintf("Added %s to shop!", a.Item.Name)}, nil
	case UpdateShopItem:
		i, err := itemIndex(s.Shop.Items, a.Item.ID)
		if err != nil {
			return Outcome{}, err
		}
		if err := a.Item.Validate(); err != nil {
			return Outcome{}, err
		}
		s.Shop.Items[i] = a.Item
		return Outcome{Title: fmt.Sprintf("Updated %s!", a.Item.Name)}, nil
	case RemoveShopItem:
		i, err := itemIndex(s.Shop.Items, a.ID)
		if err != nil {
			return Outcome{}, err
		}
		s.Shop.Items = append(s.Shop.Items[:i], s.Shop.Items[i+1:]...)
		return Outcome{Title: "Removed item from shop"}, nil
	case SetMarkups:
		if a.Buy < -100 || a.Sell < -100 {
			return Outcome{}, fmt.Errorf("markups must be at least -100%%, got buy %d sell %d", a.Buy, a.Sell)
		}
		s.Shop.BuyMarkup, s.Shop.SellMarkup = a.Buy, a.Sell

	default:
		return Outcome{}, fmt.Errorf("%T: %w", a, ErrUnknownAction)
	}
	return Outcome{}, nil
}

func updateAbilities(s *character.State, scores map[character.AbilityKey]int) error {
	merged := s.Abilities.Scores()
	for k, v := range scores {
		if _, ok := merged[k]; !ok {
			return fmt.Errorf("unknown ability %q", k)
		}
		if v < 1 {
			return fmt.Errorf("%s score must be positive, got %d", k, v)
		}
		merged[k] = v
	}
	s.Abilities = character.NewAbilities(merged)
	return nil
}

// updatedTalent applies an edit. Rewriting the description detaches the structured bonus
// unless the edit also supplies a different one.
func updatedTalent(old, upd character.Talent) character.Talent {
	if upd.Description != old.Description && (upd.Bonus == nil || sameBonus(upd.Bonus, old.Bonus)) {
		upd.Bonus = nil
	}
	return upd
}

func sameBonus(a, b *character.BonusRecord) bool {
	if a == nil || b == nil {
		return a == b
	}
	eq := func(x, y *int) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return a.ID == b.ID && a.Name == b.Name && a.BonusName == b.BonusName &&
		a.SourceType == b.SourceType && a.SourceName == b.SourceName &&
		a.SourceCategory == b.SourceCategory && a.BonusTo == b.BonusTo &&
		eq(a.BonusAmount, b.BonusAmount) && eq(a.GainedAtLevel, b.GainedAtLevel)
}

func itemIndex(items []inventory.Item, id string) (int, error) {
	i := inventory.IndexOf(items, id)
	if i < 0 {
		return -1, fmt.Errorf("%q: %w", id, inventory.ErrItemNotFound)
	}
	return i, nil
}

func useItem(s *character.State, id string) (Outcome, error) {
	i, err := itemIndex(s.Inventory, id)
	if err != nil {
		return Outcome{}, err
	}
	name := s.Inventory[i].Name
	updated, err := inventory.UseConsumable(s.Inventory[i])
	if err != nil {
		return Outcome{}, err
	}
	if updated == nil {
		s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
		return Outcome{Title: fmt.Sprintf("%s consumed!", name)}, nil
	}
	s.Inventory[i] = *updated
	left := inventory.RemainingUnits(*updated)
	unit := "units"
	if left == 1 {
		unit = "unit"
	}
	return Outcome{Title: fmt.Sprintf("Used %s. %d %s remaining.", name, left, unit)}, nil
}

func buyItem(s *character.State, a BuyItem) (Outcome, error) {
	if a.NewID == "" {
		return Outcome{}, ErrMissingID
	}
	i, err := itemIndex(s.Shop.Items, a.ShopItemID)
	if err != nil {
		return Outcome{}, err
	}
	shopItem := s.Shop.Items[i]
	purse, bought, err := inventory.Buy(s.Coins, shopItem, s.Shop.BuyMarkup, a.NewID)
	if err != nil {
		return Outcome{}, err
	}
	s.Coins = purse
	s.Inventory = append(s.Inventory, bought)
	price := inventory.BuyPrice(shopItem, s.Shop.BuyMarkup)
	return Outcome{
		Title:  fmt.Sprintf("Purchased %s!", shopItem.Name),
		Detail: "Spent " + inventory.FormatCoins(price),
	}, nil
}

func sellItem(s *character.State, id string) (Outcome, error) {
	i, err := itemIndex(s.Inventory, id)
	if err != nil {
		return Outcome{}, err
	}
	it := s.Inventory[i]
	purse, received, err := inventory.Sell(s.Coins, it, s.Shop.SellMarkup)
	if err != nil {
		return Outcome{}, err
	}
	s.Coins = purse
	s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
	return Outcome{
		Title:  fmt.Sprintf("Sold %s!", it.Name),
		Detail: "Received " + inventory.FormatCoins(received),
	}, nil
}
