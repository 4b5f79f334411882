package main

import (
	"fmt"
		"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/combat"
	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/importer"
	"github.com/cory-johannsen/shadowsheet/internal/sheet"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the character sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(args[0])
			if err != nil {
				return err
			}
			return renderSheet(a.out, store.Snapshot(), a.rule)
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var dir string
	var toClipboard bool
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Re-export the character as generator JSON",
		Long: `Re-export the character in the generator's JSON format. The file is written to --out
under a name derived from the character's name, or copied to the clipboard with --clipboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(args[0])
			if err != nil {
				return err
			}
			var sink importer.Sink = importer.DirSink{Dir: dir}
			if toClipboard {
				sink = importer.ClipboardSink{Clipboard: a.clipboard}
			}
			if err := store.ExportTo(sink); err != nil {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "out", ".", "directory to write the export file into")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy the export to the clipboard instead of writing a file")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	return a.mutating(&cobra.Command{
		Use:   "set FILE FIELD VALUE",
		Short: "Set an identity field (name, ancestry, class, level, background, alignment)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args[0], sheet.SetAttribute{Name: args[1], Value: args[2]})
		},
	})
}

func newUseCmd(a *app) *cobra.Command {
	return a.mutating(&cobra.Command{
		Use:   "use FILE ITEM_ID",
		Short: "Spend one unit of a consumable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args[0], sheet.UseItem{ID: args[1]})
		},
	})
}

func newEquipCmd(a *app) *cobra.Command {
	return a.mutating(&cobra.Command{
		Use:   "equip FILE ITEM_ID",
		Short: "Toggle whether an item is equipped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args[0], sheet.ToggleEquipped{ID: args[1]})
		},
	})
}

func newBuyCmd(a *app) *cobra.Command {
	return a.mutating(&cobra.Command{
		Use:   "buy FILE SHOP_ITEM_ID",
		Short: "Buy a copy of a shop item at the buy markup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args[0], sheet.BuyItem{ShopItemID: args[1]})
		},
	})
}

func newSellCmd(a *app) *cobra.Command {
	return a.mutating(&cobra.Command{
		Use:   "sell FILE ITEM_ID",
		Short: "Sell an inventory item at the sell markup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(args[0], sheet.SellItem{ItemID: args[1]})
		},
	})
}

func newRollCmd(a *app) *cobra.Command {
	var modeFlag string
	var seed uint64
	roll := &cobra.Command{
		Use:   "roll",
		Short: "Roll attacks, ability checks and spellcasting",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if seed != 0 {
				a.source = dice.NewSeededSource(seed)
			}
			return a.setup(cmd, args)
		},
	}
	roll.PersistentFlags().StringVar(&modeFlag, "mode", string(dice.Normal), "normal, advantage or disadvantage")
	roll.PersistentFlags().Uint64Var(&seed, "seed", 0, "replay rolls from this seed instead of system randomness")

	mode := func() (dice.Mode, error) {
		m, ok := dice.ParseMode(modeFlag)
		if !ok {
			return "", fmt.Errorf("unknown roll mode %q", modeFlag)
		}
		return m, nil
	}

	attack := &cobra.Command{
		Use:   "attack FILE ITEM_ID",
		Short: "Attack with a weapon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mode()
			if err != nil {
				return err
			}
			store, err := a.open(args[0])
			if err != nil {
				return err
			}
			s := store.Snapshot()
			i := inventory.IndexOf(s.Inventory, args[1])
			if i < 0 {
				return fmt.Errorf("%q: %w", args[1], inventory.ErrItemNotFound)
			}
			if s.Inventory[i].Type != inventory.TypeWeapon {
				return fmt.Errorf("%s is not a weapon", s.Inventory[i].Name)
			}
			res := combat.Attack(s.Inventory[i], s.Abilities, s.WeaponBonuses, m, a.roller(s.Inventory[i].Name+" attack"))
			_, err = fmt.Fprintln(a.out, res.String())
			return err
		},
	}

	check := &cobra.Command{
		Use:   "check FILE ABILITY",
		Short: "Roll an ability check (STR, DEX, CON, INT, WIS or CHA)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mode()
			if err != nil {
				return err
			}
			k, ok := character.ParseAbilityKey(args[1])
			if !ok {
				return fmt.Errorf("unknown ability %q", args[1])
			}
			store, err := a.open(args[0])
			if err != nil {
				return err
			}
			res := combat.AbilityCheck(store.Snapshot().Abilities, k, m, a.roller(string(k)+" check"))
			_, err = fmt.Fprintln(a.out, res.String())
			return err
		},
	}

	cast := &cobra.Command{
		Use:   "cast FILE SPELL",
		Short: "Roll to cast a known spell, by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mode()
			if err != nil {
				return err
			}
			store, err := a.open(args[0])
			if err != nil {
				return err
			}
			sp, ok := findSpell(store.Snapshot().Spells, args[1])
			if !ok {
				return fmt.Errorf("%q: %w", args[1], character.ErrSpellNotFound)
			}
			if !sp.Active {
				return fmt.Errorf("%s is lost until rest", sp.Name)
			}
			_, line := combat.CastingRoll(sp.Name, m, a.roller(sp.Name+" casting"))
			_, err = fmt.Fprintln(a.out, line)
			return err
		},
	}

	roll.AddCommand(attack, check, cast)
	return roll
}

func (a *app) roller(purpose string) *dice.Roller {
	return dice.NewLoggedRoller(a.source, a.logger).For(purpose)
}

func findSpell(spells []character.Spell, key string) (character.Spell, bool) {
	for _, sp := range spells {
		if sp.ID == key || strings.EqualFold(sp.Name, strings.TrimSpace(key)) {
			return sp, true
		}
	}
	return character.Spell{}, false
}
