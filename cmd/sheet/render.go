package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/combat"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
)

// consoleNotifier prints notifications as single lines. Error details are left to the
// command's returned error.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Success(title, detail string) {
	if detail != "" {
		fmt.Fprintf(n.w, "%s %s\n", title, detail)
		return
	}
	fmt.Fprintln(n.w, title)
}

func (n consoleNotifier) Error(title, detail string) {
	if detail != "" {
		fmt.Fprintf(n.w, "%s (%s)\n", title, detail)
		return
	}
	fmt.Fprintln(n.w, title)
}

// renderSheet writes a plain-text summary of s.
func renderSheet(w io.Writer, s character.State, rule character.DexRule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\tLevel %d %s %s\n", s.Name, s.Level, s.Ancestry, s.Class)
	fmt.Fprintf(tw, "Background\t%s\n", s.Background)
	fmt.Fprintf(tw, "Alignment\t%s\n", s.Alignment)
	if s.Languages != "" {
		fmt.Fprintf(tw, "Languages\t%s\n", s.Languages)
	}
	luck := "available"
	if s.LuckTokenUsed {
		luck = "used"
	}
	fmt.Fprintf(tw, "HP\t%d/%d\n", s.HitPoints, s.MaxHitPoints)
	fmt.Fprintf(tw, "AC\t%d\n", s.ArmorClass(rule))
	fmt.Fprintf(tw, "XP\t%d/%d\n", s.CurrentXP, s.XPToNextLevel)
	fmt.Fprintf(tw, "Luck token\t%s\n", luck)
	fmt.Fprintf(tw, "Gear slots\t%d/%d\n", s.SlotsUsed(), s.SlotsAvailable())
	fmt.Fprintf(tw, "Coins\t%s\n", inventory.FormatCoins(s.Coins))

	fmt.Fprintln(tw)
	for _, ab := range s.Abilities.Ordered() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ab.ShortName, ab.Score, character.FormatModifier(ab.Modifier()))
	}

	if len(s.Inventory) > 0 {
		fmt.Fprintln(tw, "\nInventory")
		for _, it := range s.Inventory {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\n", it.ID, it.Name, it.Type, it.Slots, itemNote(it, s))
		}
	}
	if len(s.Spells) > 0 {
		fmt.Fprintln(tw, "\nSpells")
		for _, sp := range s.Spells {
			state := ""
			if !sp.Active {
				state = "lost"
			}
			fmt.Fprintf(tw, "  %s\t%s\ttier %d\t%s\n", sp.ID, sp.Name, sp.Tier, state)
		}
	}
	if len(s.Talents) > 0 {
		fmt.Fprintln(tw, "\nTalents")
		for _, t := range s.Talents {
			fmt.Fprintf(tw, "  %s\n", t.Description)
		}
	}
	if len(s.Shop.Items) > 0 {
		fmt.Fprintf(tw, "\nShop (buy %+d%%, sell %+d%%)\n", s.Shop.BuyMarkup, s.Shop.SellMarkup)
		for _, it := range s.Shop.Items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", it.ID, it.Name, inventory.FormatCoins(inventory.BuyPrice(it, s.Shop.BuyMarkup)))
		}
	}
	if strings.TrimSpace(s.Notes) != "" {
		fmt.Fprintf(tw, "\nNotes\n%s\n", s.Notes)
	}
	return tw.Flush()
}

func itemNote(it inventory.Item, s character.State) string {
	var parts []string
	if it.Equipped {
		parts = append(parts, "equipped")
	}
	switch it.Type {
	case inventory.TypeWeapon:
		parts = append(parts, fmt.Sprintf("%s %s", character.FormatModifier(combat.AttackBonus(it, s.Abilities, s.WeaponBonuses)), it.Damage))
	case inventory.TypeArmor:
		parts = append(parts, fmt.Sprintf("AC %d", it.ArmorAC))
	case inventory.TypeShield:
		parts = append(parts, fmt.Sprintf("AC %+d", it.ShieldACBonus))
	}
	if inventory.IsTracked(it) {
		parts = append(parts, fmt.Sprintf("%d left", inventory.RemainingUnits(it)))
	}
	return strings.Join(parts, ", ")
}
