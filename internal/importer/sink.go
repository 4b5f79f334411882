package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
)

// DefaultFileName is used when the character has no usable name.
const DefaultFileName = "character.json"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathSeparator = regexp.MustCompile(`[/\\]`)
)

// ExportFileName derives the download file name for a character.
//
// Postcondition: every whitespace run and path separator in name is replaced by "_" and
// ".json" is appended; a blank name yields DefaultFileName.
func ExportFileName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultFileName
	}
	base := whitespaceRun.ReplaceAllString(name, "_")
	return pathSeparator.ReplaceAllString(base, "_") + ".json"
}

// Sink receives exported character JSON.
type Sink interface {
	Save(characterName string, data []byte) error
}

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// ReadAll implements Clipboard.
func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// DirSink writes export files into Dir.
type DirSink struct {
	Dir string
}

// Save implements Sink.
func (s DirSink) Save(characterName string, data []byte) error {
	_, err := WriteExport(s.Dir, characterName, data)
	return err
}

// ClipboardSink copies exports to a clipboard.
type ClipboardSink struct {
	Clipboard Clipboard
}

// Save implements Sink.
func (s ClipboardSink) Save(_ string, data []byte) error {
	if err := s.Clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// WriteExport writes data to dir under ExportFileName(characterName) and returns the path.
//
// Precondition: dir must exist or be creatable.
func WriteExport(dir, characterName string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, ExportFileName(characterName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
