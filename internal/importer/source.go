// Package importer provides the input and output channels for character JSON:
// files, pasted text and the system clipboard.
package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyInput is returned when a channel yields no content to import.
var ErrEmptyInput = errors.New("please paste JSON content")

// Source loads raw character JSON from one input channel.
//
// Postcondition: Load returns non-empty data or a non-nil error.
type Source interface {
	Load() ([]byte, error)
}

// FileSource reads an uploaded file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load() ([]byte, error) { return ReadFile(s.Path) }

// PasteSource holds text pasted into the import box.
type PasteSource struct {
	Text string
}

// Load implements Source.
func (s PasteSource) Load() ([]byte, error) { return ReadPaste(s.Text) }

// ClipboardSource reads whatever text is on the clipboard.
type ClipboardSource struct {
	Clipboard Clipboard
}

// Load implements Source.
func (s ClipboardSource) Load() ([]byte, error) {
	text, err := s.Clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading clipboard: %w", err)
	}
	return ReadPaste(text)
}

// ReadFile returns the contents of the file at path.
//
// Postcondition: returns ErrEmptyInput (wrapped) when the file holds only whitespace.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}
	return data, nil
}

// ReadPaste returns pasted text as import data.
//
// Postcondition: returns ErrEmptyInput when text is empty or only whitespace.
func ReadPaste(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	return []byte(text), nil
}
