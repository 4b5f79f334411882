// Package spell holds the static spell reference database consulted when importing spell names.
package spell

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/spells.yaml
var defaultSpellsYAML []byte

// Def is the reference metadata for one spell.
type Def struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	Tier        int    `yaml:"tier"`
	SpellType   string `yaml:"spell_type"`
	Duration    string `yaml:"duration"`
	Range       string `yaml:"range"`
	Description string `yaml:"description"`
}

// Validate checks that the Def satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Tier < 1 || d.Tier > 5 {
		errs = append(errs, fmt.Errorf("tier must be 1-5, got %d", d.Tier))
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell %q: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// Database is an immutable set of spell definitions indexed by lower-cased name.
type Database struct {
	byName map[string]*Def
}

type spellsFile struct {
	Spells []Def `yaml:"spells"`
}

// Parse decodes and validates spell YAML.
//
// Postcondition: returns a Database with no two spells sharing a case-insensitive name, or an error.
func Parse(data []byte) (*Database, error) {
	var f spellsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("spell: parsing database: %w", err)
	}
	db := &Database{byName: make(map[string]*Def, len(f.Spells))}
	var errs []error
	for i := range f.Spells {
		d := &f.Spells[i]
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		key := normalize(d.Name)
		if _, dup := db.byName[key]; dup {
			errs = append(errs, fmt.Errorf("spell %q listed twice", d.Name))
			continue
		}
		db.byName[key] = d
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("spell: invalid database: %w", errors.Join(errs...))
	}
	return db, nil
}

// LoadDatabase reads a spell YAML file from path.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spell: LoadDatabase: cannot read %q: %w", path, err)
	}
	return Parse(data)
}

// DefaultDatabase returns the database compiled into the binary.
// Panics if the embedded data is invalid.
func DefaultDatabase() *Database {
	db, err := Parse(defaultSpellsYAML)
	if err != nil {
		panic(err.Error())
	}
	return db
}

// Lookup finds a spell by name, ignoring case and surrounding whitespace.
func (db *Database) Lookup(name string) (Def, bool) {
	d, ok := db.byName[normalize(name)]
	if !ok {
		return Def{}, false
	}
	return *d, true
}

// All returns every spell sorted by tier, then name.
func (db *Database) All() []Def {
	out := make([]Def, 0, len(db.byName))
	for _, d := range db.byName {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of spells.
func (db *Database) Len() int {
	return len(db.byName)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
