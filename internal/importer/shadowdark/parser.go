package shadowdark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON is returned when import input is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON format")

// Parse decodes a generator export.
//
// Precondition: data is the raw file or pasted text.
// Postcondition: returns ErrInvalidJSON (wrapped) when data is not well-formed JSON or its
// top level is not an object. Values of the wrong JSON type are dropped and recorded in
// Character.Issues; they never fail the parse.
func Parse(data []byte) (*Character, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("shadowdark: %w", ErrInvalidJSON)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("shadowdark: top level must be an object: %w", ErrInvalidJSON)
	}

	var c Character
	err := json.Unmarshal(trimmed, &c)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.As(err, &typeErr):
		c.Issues = append(c.Issues, fmt.Sprintf("field %q: cannot use JSON %s; ignored", typeErr.Field, typeErr.Value))
	default:
		return nil, fmt.Errorf("shadowdark: parsing character: %w: %v", ErrInvalidJSON, err)
	}
	return &c, nil
}
