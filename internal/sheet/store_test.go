package sheet_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
	"github.com/cory-johannsen/shadowsheet/internal/game/inventory"
	"github.com/cory-johannsen/shadowsheet/internal/game/spell"
	"github.com/cory-johannsen/shadowsheet/internal/importer"
	"github.com/cory-johannsen/shadowsheet/internal/importer/shadowdark"
	"github.com/cory-johannsen/shadowsheet/internal/sheet"
	mocksheet "github.com/cory-johannsen/shadowsheet/internal/sheet/mock"
)

const avaJSON = `{
	"name": "Ava",
	"class": "Fighter",
	"level": 2,
	"stats": {"STR": 14, "DEX": 12},
	"hitPoints": 9,
	"maxHitPoints": 12,
	"gold": 20,
	"gear": [{"instanceId": "g1", "name": "Longsword", "type": "weapon", "slots": 1, "cost": 9}]
}`

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, f.err }

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func sequentialIDs() sheet.IDFunc {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T, initial character.State) (*sheet.Store, *mocksheet.MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mocksheet.NewMockNotifier(ctrl)
	store := sheet.NewStore(initial, sheet.Options{
		Converter: shadowdark.Converter{
			Catalog:  inventory.DefaultCatalog(),
			Spells:   spell.DefaultDatabase(),
			Defaults: character.Defaults{SellMarkup: -50},
		},
		Exporter: shadowdark.Exporter{Rule: character.NoDex{}},
		Indent:   2,
		Notifier: notifier,
		NewID:    sequentialIDs(),
	})
	return store, notifier
}

func TestNewStore_SnapshotIsIsolated(t *testing.T) {
	initial := baseState()
	store, _ := newStore(t, initial)
	assert.False(t, store.Imported())

	snap := store.Snapshot()
	assert.Equal(t, initial, snap)
	snap.Inventory[0].Name = "changed"
	initial.Talents[0].Description = "changed"
	assert.Equal(t, "Arrows", store.Snapshot().Inventory[0].Name)
	assert.Equal(t, "Class: Fighter | +1", store.Snapshot().Talents[0].Description)
}

func TestStore_Dispatch_Success(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Success("Used Arrows. 5 units remaining.", "")

	require.NoError(t, store.Dispatch(sheet.UseItem{ID: "arrows"}))
	assert.Equal(t, 5, store.Snapshot().Inventory[0].CurrentUnits)
}

func TestStore_Dispatch_SilentOutcome(t *testing.T) {
	store, _ := newStore(t, baseState())
	require.NoError(t, store.Dispatch(sheet.UpdateNotes{Notes: "quiet"}))
	assert.Equal(t, "quiet", store.Snapshot().Notes)
}

func TestStore_Dispatch_ErrorIsReported(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error("Could not remove item", gomock.Any())

	err := store.Dispatch(sheet.RemoveItem{ID: "ghost"})
	assert.True(t, errors.Is(err, inventory.ErrItemNotFound))
	assert.Equal(t, baseState(), store.Snapshot())
}

func TestStore_Dispatch_NotEnoughCoins(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error(sheet.TitleNotEnoughCoins, gomock.Any())

	err := store.Dispatch(sheet.BuyItem{ShopItemID: "plate"})
	assert.True(t, errors.Is(err, inventory.ErrInsufficientFunds))
	assert.Equal(t, inventory.Coins{Gold: 10}, store.Snapshot().Coins)
}

func TestStore_Dispatch_AssignsIDs(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Success("Purchased Lantern!", "Spent 5g")
	notifier.EXPECT().Success("Added Crowbar to shop!", "")

	require.NoError(t, store.Dispatch(sheet.BuyItem{ShopItemID: "lantern"}))
	require.NoError(t, store.Dispatch(sheet.AddTalent{Talent: character.Talent{Description: "Lucky"}}))
	require.NoError(t, store.Dispatch(sheet.AddSpell{Spell: character.Spell{Name: "Sleep", Tier: 1}}))
	require.NoError(t, store.Dispatch(sheet.AddItem{Item: inventory.Item{Name: "Rations", Type: inventory.TypeGear, Slots: 1}}))
	require.NoError(t, store.Dispatch(sheet.AddShopItem{Item: inventory.Item{Name: "Crowbar", Type: inventory.TypeGear, Slots: 1}}))

	s := store.Snapshot()
	assert.GreaterOrEqual(t, inventory.IndexOf(s.Inventory, "id-1"), 0)
	assert.GreaterOrEqual(t, s.TalentIndex("id-2"), 0)
	assert.GreaterOrEqual(t, s.SpellIndex("id-3"), 0)
	assert.GreaterOrEqual(t, inventory.IndexOf(s.Inventory, "id-4"), 0)
	assert.GreaterOrEqual(t, inventory.IndexOf(s.Shop.Items, "id-5"), 0)
}

func TestStore_Dispatch_KeepsGivenIDs(t *testing.T) {
	store, _ := newStore(t, baseState())
	require.NoError(t, store.Dispatch(sheet.AddTalent{Talent: character.Talent{ID: "mine", Description: "Lucky"}}))
	assert.GreaterOrEqual(t, store.Snapshot().TalentIndex("mine"), 0)
}

func TestStore_Dispatch_Concurrent(t *testing.T) {
	store, _ := newStore(t, baseState())
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Dispatch(sheet.AddSpell{Spell: character.Spell{Name: "Light", Tier: 1}})
		}()
	}
	wg.Wait()

	s := store.Snapshot()
	assert.Len(t, s.Spells, 51)
	seen := map[string]bool{}
	for _, sp := range s.Spells {
		assert.False(t, seen[sp.ID], "duplicate id %s", sp.ID)
		seen[sp.ID] = true
	}
}

func TestStore_Import(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Success(sheet.TitleImported, "Ava")

	warnings, err := store.Import([]byte(avaJSON))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, store.Imported())

	s := store.Snapshot()
	assert.Equal(t, "Ava", s.Name)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 14, s.Abilities.Score(character.STR))
	assert.Equal(t, inventory.Coins{Gold: 20}, s.Coins)
	require.Len(t, s.Inventory, 1)
	assert.Equal(t, "1d8", s.Inventory[0].Damage)
	assert.Equal(t, -50, s.Shop.SellMarkup)
	assert.Empty(t, s.Spells, "nothing from the previous sheet survives")
}

func TestStore_Import_InvalidJSON(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error(sheet.TitleInvalidJSON, gomock.Any())

	_, err := store.Import([]byte(`{"name": "Ava",`))
	assert.True(t, errors.Is(err, shadowdark.ErrInvalidJSON))
	assert.False(t, store.Imported())
	assert.Equal(t, baseState(), store.Snapshot())
}

func TestStore_ImportFrom_EmptyPaste(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error(sheet.TitleEmptyInput, "")

	_, err := store.ImportFrom(importer.PasteSource{Text: "   "})
	assert.True(t, errors.Is(err, importer.ErrEmptyInput))
	assert.Equal(t, baseState(), store.Snapshot())
}

func TestStore_ImportFrom_MissingFile(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error(sheet.TitleReadFailed, gomock.Any())

	_, err := store.ImportFrom(importer.FileSource{Path: filepath.Join(t.TempDir(), "gone.json")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, store.Imported())
}

func TestStore_ImportFrom_Clipboard(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Success(sheet.TitleImported, "Ava")

	_, err := store.ImportFrom(importer.ClipboardSource{Clipboard: &fakeClipboard{text: avaJSON}})
	require.NoError(t, err)
	assert.Equal(t, "Ava", store.Snapshot().Name)
}

func TestStore_Export(t *testing.T) {
	store, _ := newStore(t, baseState())
	data, err := store.Export()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Ava", out["name"])
	assert.Contains(t, string(data), "\n  \"name\"")
}

func TestStore_ExportTo_Dir(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Success(sheet.TitleExported, "Ava.json")

	dir := t.TempDir()
	require.NoError(t, store.ExportTo(importer.DirSink{Dir: dir}))
	data, err := os.ReadFile(filepath.Join(dir, "Ava.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestStore_ExportTo_Clipboard(t *testing.T) {
	store, notifier := newStore(t, baseState())
	cb := &fakeClipboard{}
	notifier.EXPECT().Success(sheet.TitleCopied, "")

	require.NoError(t, store.ExportTo(importer.ClipboardSink{Clipboard: cb}))
	assert.Contains(t, cb.text, `"name": "Ava"`)
}

func TestStore_ExportTo_ClipboardFailure(t *testing.T) {
	store, notifier := newStore(t, baseState())
	notifier.EXPECT().Error(sheet.TitleCopyFailed, gomock.Any())

	err := store.ExportTo(importer.ClipboardSink{Clipboard: &fakeClipboard{err: errors.New("no display")}})
	assert.Error(t, err)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	src, _ := newStore(t, baseState())
	data, err := src.Export()
	require.NoError(t, err)

	dst, notifier := newStore(t, character.New(character.Defaults{}))
	notifier.EXPECT().Success(sheet.TitleImported, "Ava")
	_, err = dst.Import(data)
	require.NoError(t, err)

	got, want := dst.Snapshot(), src.Snapshot()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Coins, got.Coins)
	assert.Equal(t, want.Shop.BuyMarkup, got.Shop.BuyMarkup)
	assert.Len(t, got.Inventory, len(want.Inventory))
	assert.Len(t, got.Shop.Items, len(want.Shop.Items))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := sheet.LogNotifier{Logger: zap.New(core)}
	n.Success("Sold Rope!", "Received 5c")
	n.Error("Not enough coins!", "")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Sold Rope!", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "Received 5c", entries[0].ContextMap()["detail"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}
