package inventory

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/shadowsheet/internal/game/dice"
)

//go:embed content/catalog.yaml
var defaultCatalogYAML []byte

// WeaponStats are the fallback combat stats for a named weapon.
type WeaponStats struct {
	Damage      string `yaml:"damage"`
	Ability     string `yaml:"ability"`
	AttackBonus int    `yaml:"attack_bonus"`
}

type weaponEntry struct {
	Name        string `yaml:"name"`
	WeaponStats `yaml:",inline"`
}

type armorEntry struct {
	Name string `yaml:"name"`
	AC   int    `yaml:"ac"`
}

type shieldEntry struct {
	Name  string `yaml:"name"`
	Bonus int    `yaml:"bonus"`
}

type catalogFile struct {
	Weapons       []weaponEntry     `yaml:"weapons"`
	Armor         []armorEntry      `yaml:"armor"`
	Shields       []shieldEntry     `yaml:"shields"`
	Types         map[string]string `yaml:"types"`
	DefaultWeapon WeaponStats       `yaml:"default_weapon"`
}

// Catalog holds the immutable name-keyed lookup tables used to backfill gear records.
// Keys are exact, case-sensitive item names.
type Catalog struct {
	weapons       map[string]WeaponStats
	armor         map[string]int
	shields       map[string]int
	types         map[string]string
	defaultWeapon WeaponStats
}

// ParseCatalog decodes and validates catalog YAML.
//
// Postcondition: returns a Catalog whose every weapon has valid dice notation and a valid ability,
// or an error describing all violations.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("inventory: parsing catalog: %w", err)
	}

	c := &Catalog{
		weapons:       make(map[string]WeaponStats, len(f.Weapons)),
		armor:         make(map[string]int, len(f.Armor)),
		shields:       make(map[string]int, len(f.Shields)),
		types:         make(map[string]string, len(f.Types)),
		defaultWeapon: f.DefaultWeapon,
	}

	var errs []error
	checkWeapon := func(name string, w WeaponStats) {
		if !dice.IsNotation(w.Damage) {
			errs = append(errs, fmt.Errorf("weapon %q: damage %q is not dice notation", name, w.Damage))
		}
		if w.Ability != AbilitySTR && w.Ability != AbilityDEX && w.Ability != AbilityINT {
			errs = append(errs, fmt.Errorf("weapon %q: ability must be STR, DEX or INT; got %q", name, w.Ability))
		}
	}
	checkWeapon("default_weapon", f.DefaultWeapon)
	for _, w := range f.Weapons {
		if _, dup := c.weapons[w.Name]; dup {
			errs = append(errs, fmt.Errorf("weapon %q listed twice", w.Name))
		}
		checkWeapon(w.Name, w.WeaponStats)
		c.weapons[w.Name] = w.WeaponStats
	}
	for _, a := range f.Armor {
		if a.AC <= 0 {
			errs = append(errs, fmt.Errorf("armor %q: ac must be > 0", a.Name))
		}
		c.armor[a.Name] = a.AC
	}
	for _, s := range f.Shields {
		if s.Bonus <= 0 {
			errs = append(errs, fmt.Errorf("shield %q: bonus must be > 0", s.Name))
		}
		c.shields[s.Name] = s.Bonus
	}
	for name, t := range f.Types {
		if !validTypes[t] {
			errs = append(errs, fmt.Errorf("type entry %q: unknown type %q", name, t))
		}
		c.types[name] = t
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("inventory: invalid catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// LoadCatalog reads a catalog YAML file from path.
//
// Postcondition: returns a valid Catalog or a non-nil error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: LoadCatalog: cannot read %q: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the catalog compiled into the binary.
// Panics if the embedded tables are invalid.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Weapon returns the stats for a named weapon and whether the name is known.
// Unknown names return the catalog's default weapon stats with ok == false.
func (c *Catalog) Weapon(name string) (stats WeaponStats, ok bool) {
	if w, found := c.weapons[name]; found {
		return w, true
	}
	return c.defaultWeapon, false
}

// Armor returns the AC a named armor sets when equipped.
func (c *Catalog) Armor(name string) (int, bool) {
	ac, ok := c.armor[name]
	return ac, ok
}

// Shield returns the AC bonus a named shield adds when equipped.
func (c *Catalog) Shield(name string) (int, bool) {
	b, ok := c.shields[name]
	return b, ok
}

// InferType classifies a gear record. A specific external type tag (weapon, armor, shield,
// consumable, treasure) is kept as-is; an absent or generic tag falls back to the name tables
// (types, then armor, shields and weapons) and then to gear.
//
// Postcondition: IsValidType(result).
func (c *Catalog) InferType(name, externalType string) string {
	tag := strings.ToLower(strings.TrimSpace(externalType))
	if tag != TypeGear && validTypes[tag] {
		return tag
	}
	if t, ok := c.types[name]; ok {
		return t
	}
	if _, ok := c.armor[name]; ok {
		return TypeArmor
	}
	if _, ok := c.shields[name]; ok {
		return TypeShield
	}
	if _, ok := c.weapons[name]; ok {
		return TypeWeapon
	}
	return TypeGear
}

// Sizes returns the number of weapon, armor, shield, and type entries.
func (c *Catalog) Sizes() (weapons, armor, shields, types int) {
	return len(c.weapons), len(c.armor), len(c.shields), len(c.types)
}
