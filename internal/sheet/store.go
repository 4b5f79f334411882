package sheet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/importer"
	"github.com/cory-johannsen/shadowsheet/internal/importer/shadowdark"
)

// Notification titles shown for import and export.
const (
	TitleImported       = "Character imported successfully!"
	TitleInvalidJSON    = "Invalid JSON format"
	TitleEmptyInput     = "Please paste JSON content"
	TitleReadFailed     = "Could not read character"
	TitleExported       = "Character exported successfully!"
	TitleExportFailed   = "Error exporting character"
	TitleCopied         = "Copied to clipboard!"
	TitleCopyFailed     = "Failed to copy to clipboard"
	TitleNotEnoughCoins = "Not enough coins!"
)

// IDFunc returns a fresh unique identifier for a new sheet entry.
type IDFunc func() string

// NewUUID is the default IDFunc.
func NewUUID() string { return uuid.NewString() }

// Options configures a Store. Zero values select the defaults noted per field.
type Options struct {
	// Converter maps imported JSON to a sheet. Its Catalog and Spells must be set.
	Converter shadowdark.Converter
	// Exporter maps the sheet back to JSON.
	Exporter shadowdark.Exporter
	// Indent is the export JSON indentation width.
	Indent int
	// Notifier receives user-facing messages. Nil logs them through Logger.
	Notifier Notifier
	// NewID assigns IDs to new entries. Nil uses NewUUID.
	NewID IDFunc
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Store is the single writer of a character sheet. All methods are safe for concurrent use;
// dispatches are applied one at a time in arrival order.
type Store struct {
	mu       sync.Mutex
	state    character.State
	imported bool

	conv     shadowdark.Converter
	exp      shadowdark.Exporter
	indent   int
	notifier Notifier
	newID    IDFunc
	logger   *zap.Logger
}

// NewStore returns a Store holding initial.
//
// Postcondition: Snapshot() equals initial; Imported() is false.
func NewStore(initial character.State, opts Options) *Store {
	s := &Store{
		state:    initial.Clone(),
		conv:     opts.Converter,
		exp:      opts.Exporter,
		indent:   opts.Indent,
		notifier: opts.Notifier,
		newID:    opts.NewID,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}
	if s.newID == nil {
		s.newID = NewUUID
	}
	if s.exp.Logger == nil {
		s.exp.Logger = s.logger
	}
	if s.conv.Logger == nil {
		s.conv.Logger = s.logger
	}
	return s
}

// Snapshot returns a deep copy of the current sheet.
func (s *Store) Snapshot() character.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Imported reports whether a character has been imported this session.
func (s *Store) Imported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imported
}

// Dispatch applies a to the sheet.
//
// Postcondition: on error the sheet is unchanged and the error was reported to the Notifier;
// on success the outcome, if any, was reported.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(s.withIDs(a))
}

func (s *Store) dispatchLocked(a Action) error {
	next, out, err := Reduce(s.state, a)
	if err != nil {
		s.logger.Debug("action rejected", zap.String("action", a.ActionName()), zap.Error(err))
		s.notifier.Error(errorTitle(a, err), err.Error())
		return err
	}
	s.state = next
	s.logger.Debug("action applied", zap.String("action", a.ActionName()))
	if out.Title != "" {
		s.notifier.Success(out.Title, out.Detail)
	}
	return nil
}

// withIDs fills the IDs of entries a creates.
func (s *Store) withIDs(a Action) Action {
	switch a := a.(type) {
	case AddTalent:
		if a.Talent.ID == "" {
			a.Talent.ID = s.newID()
		}
		return a
	case AddSpell:
		if a.Spell.ID == "" {
			a.Spell.ID = s.newID()
		}
		return a
	case AddItem:
		if a.Item.ID == "" {
			a.Item.ID = s.newID()
		}
		return a
	case AddShopItem:
		if a.Item.ID == "" {
			a.Item.ID = s.newID()
		}
		return a
	case BuyItem:
		if a.NewID == "" {
			a.NewID = s.newID()
		}
		return a
	default:
		return a
	}
}

func errorTitle(a Action, err error) string {
	if errors.Is(err, inventory.ErrInsufficientFunds) {
		return TitleNotEnoughCoins
	}
	return fmt.Sprintf("Could not %s", a.ActionName())
}

// Import replaces the sheet with the character in data.
//
// Postcondition: on a parse error the sheet is untouched, TitleInvalidJSON was reported and
// the error wraps shadowdark.ErrInvalidJSON. On success the whole sheet is replaced in one
// step and Imported() is true. The returned warnings describe recoverable input oddities.
func (s *Store) Import(data []byte) ([]string, error) {
	c, err := shadowdark.Parse(data)
	if err != nil {
		s.notifier.Error(TitleInvalidJSON, err.Error())
		return nil, err
	}
	next, warnings := s.conv.Convert(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dispatchLocked(ReplaceState{State: next}); err != nil {
		return nil, err
	}
	s.imported = true
	s.notifier.Success(TitleImported, next.Name)
	return warnings, nil
}

// ImportFrom loads data from src and imports it.
func (s *Store) ImportFrom(src importer.Source) ([]string, error) {
	data, err := src.Load()
	if err != nil {
		if errors.Is(err, importer.ErrEmptyInput) {
			s.notifier.Error(TitleEmptyInput, "")
		} else {
			s.notifier.Error(TitleReadFailed, err.Error())
		}
		return nil, err
	}
	return s.Import(data)
}

// Export encodes the current sheet in the generator format.
func (s *Store) Export() ([]byte, error) {
	snap := s.Snapshot()
	data, err := shadowdark.Marshal(s.exp.Export(snap), s.indent)
	if err != nil {
		s.notifier.Error(TitleExportFailed, err.Error())
		return nil, err
	}
	return data, nil
}

// ExportTo exports the sheet and hands it to sink.
func (s *Store) ExportTo(sink importer.Sink) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	name := s.Snapshot().Name
	_, toClipboard := sink.(importer.ClipboardSink)
	if err := sink.Save(name, data); err != nil {
		if toClipboard {
			s.notifier.Error(TitleCopyFailed, err.Error())
		} else {
			s.notifier.Error(TitleExportFailed, err.Error())
		}
		return err
	}
	if toClipboard {
		s.notifier.Success(TitleCopied, "")
	} else {
		s.notifier.Success(TitleExported, importer.ExportFileName(name))
	}
	return nil
}
