// Package config provides Viper-based configuration loading for the character sheet engine.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Dex policy names accepted by RulesConfig.DexPolicy.
const (
	DexPolicyNone   = "none"
	DexPolicyAlways = "always"
	DexPolicyLight  = "light"
	DexPolicyTiered = "tiered"
	DexPolicyScript = "script"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RulesConfig selects how derived stats are computed.
type RulesConfig struct {
	// DexPolicy decides when the DEX modifier contributes to armor class.
	DexPolicy string `mapstructure:"dex_policy"`
	// LightArmorMaxSlots is the heaviest armor (in gear slots) that still allows DEX under the "light" policy.
	LightArmorMaxSlots int `mapstructure:"light_armor_max_slots"`
	// ScriptPath is the Lua file defining dex_bonus(armor, dex_mod) for the "script" policy.
	ScriptPath string `mapstructure:"script_path"`
	// ScriptInstructionLimit caps the Lua opcodes per hook call; 0 uses the sandbox default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// ShopConfig holds the markups a fresh sheet starts with.
type ShopConfig struct {
	BuyMarkup  int `mapstructure:"buy_markup"`
	SellMarkup int `mapstructure:"sell_markup"`
}

// ContentConfig points at optional YAML files replacing the embedded reference tables.
type ContentConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
	SpellsPath  string `mapstructure:"spells_path"`
}

// ExportConfig controls the JSON written by the export transform.
type ExportConfig struct {
	Indent int `mapstructure:"indent"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Shop    ShopConfig    `mapstructure:"shop"`
	Content ContentConfig `mapstructure:"content"`
	Export  ExportConfig  `mapstructure:"export"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateShop(c.Shop); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Export.Indent < 0 || c.Export.Indent > 8 {
		errs = append(errs, fmt.Sprintf("export.indent must be 0-8, got %d", c.Export.Indent))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	validPolicies := map[string]bool{
		DexPolicyNone: true, DexPolicyAlways: true, DexPolicyLight: true,
		DexPolicyTiered: true, DexPolicyScript: true,
	}
	if !validPolicies[r.DexPolicy] {
		errs = append(errs, fmt.Sprintf("rules.dex_policy must be one of [none, always, light, tiered, script], got %q", r.DexPolicy))
	}
	if r.LightArmorMaxSlots < 0 {
		errs = append(errs, fmt.Sprintf("rules.light_armor_max_slots must be >= 0, got %d", r.LightArmorMaxSlots))
	}
	if r.DexPolicy == DexPolicyScript && r.ScriptPath == "" {
		errs = append(errs, "rules.script_path is required when rules.dex_policy is script")
	}
	if r.ScriptInstructionLimit < 0 {
		errs = append(errs, "rules.script_instruction_limit must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateShop(s ShopConfig) error {
	if s.BuyMarkup < -100 {
		return fmt.Errorf("shop.buy_markup must be >= -100, got %d", s.BuyMarkup)
	}
	if s.SellMarkup < -100 {
		return fmt.Errorf("shop.sell_markup must be >= -100, got %d", s.SellMarkup)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SHEET_ prefix
	v.SetEnvPrefix("SHEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults do not validate: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("rules.dex_policy", DexPolicyLight)
	v.SetDefault("rules.light_armor_max_slots", 2)
	v.SetDefault("rules.script_path", "")
	v.SetDefault("rules.script_instruction_limit", 100_000)

	v.SetDefault("shop.buy_markup", 0)
	v.SetDefault("shop.sell_markup", -50)

	v.SetDefault("content.catalog_path", "")
	v.SetDefault("content.spells_path", "")

	v.SetDefault("export.indent", 2)
}
