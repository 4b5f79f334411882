package sheet

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/config"
	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/game/spell"
	"github.com/cory-johannsen/shadowsheet/internal/scripting"
)

// DexRule builds the armor-class DEX rule named by cfg.DexPolicy.
// The returned close function releases a script VM and is never nil.
//
// Precondition: cfg has passed config validation.
func DexRule(cfg config.RulesConfig, logger *zap.Logger) (character.DexRule, func(), error) {
	noop := func() {}
	switch cfg.DexPolicy {
	case config.DexPolicyNone:
		return character.NoDex{}, noop, nil
	case config.DexPolicyAlways:
		return character.AlwaysDex{}, noop, nil
	case config.DexPolicyLight, "":
		return character.LightArmorDex{MaxSlots: cfg.LightArmorMaxSlots}, noop, nil
	case config.DexPolicyTiered:
		return character.TieredDex{}, noop, nil
	case config.DexPolicyScript:
		if logger == nil {
			logger = zap.NewNop()
		}
		ds, err := scripting.LoadDexScript(cfg.ScriptPath, cfg.ScriptInstructionLimit, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("loading dex script: %w", err)
		}
		return ds, ds.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown dex policy %q", cfg.DexPolicy)
	}
}

// Content loads the gear catalog and spell database, preferring the override files in cfg
// over the embedded tables.
func Content(cfg config.ContentConfig) (*inventory.Catalog, *spell.Database, error) {
	catalog := inventory.DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := inventory.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
		catalog = c
	}
	spells := spell.DefaultDatabase()
	if cfg.SpellsPath != "" {
		db, err := spell.LoadDatabase(cfg.SpellsPath)
		if err != nil {
			return nil, nil, err
		}
		spells = db
	}
	return catalog, spells, nil
}
