package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedBundle rejects an import document that is not shaped as
// {"story": {...}, "scenes": [...]}. Import is all-or-nothing: a rejected
// document applies no changes.
var ErrMalformedBundle = errors.New("malformed story bundle")

// StoryBundle is the import/export document: one story and its scenes.
// Binary payloads (story thumbnails, asset data) and display handles are
// never part of a bundle.
type StoryBundle struct {
	Story  *Story   `json:"story"`
	Scenes []*Scene `json:"scenes"`
}

// Encode serializes the bundle as indented JSON, matching the export file
// format.
func (b *StoryBundle) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}
	return data, nil
}

// FileName derives the export file name from the story name.
func (b *StoryBundle) FileName() string {
	name := "story"
	if b.Story != nil && b.Story.Name != "" {
		name = b.Story.Name
	}
	return name + ".json"
}

// DecodeBundle parses an import document. Validation is explicit but
// shallow: the top level must carry a "story" object and a "scenes" array.
// Any document failing that shape, or whose records cannot be decoded into
// the entity types, is rejected with ErrMalformedBundle.
func DecodeBundle(data []byte) (*StoryBundle, error) {
	var shape struct {
		Story  json.RawMessage `json:"story"`
		Scenes json.RawMessage `json:"scenes"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBundle, err)
	}
	if !isJSONObject(shape.Story) {
		return nil, fmt.Errorf("%w: missing story object", ErrMalformedBundle)
	}
	if !isJSONArray(shape.Scenes) {
		return nil, fmt.Errorf("%w: scenes must be an array", ErrMalformedBundle)
	}

	var b StoryBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBundle, err)
	}
	return &b, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
