package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DragChannel is the payload channel name the vault publishes drags on and
// the canvas drop handler consumes from.
const DragChannel = "dungeon-asset"

// ErrMalformedPayload reports a drag payload that does not parse or carries
// no asset type.
var ErrMalformedPayload = errors.New("malformed drag payload")

// DragPayload is the asset descriptor serialized onto the drag channel.
// Handle is the transient display handle for drag preview rendering; it
// lives only as long as the drag and is never persisted.
type DragPayload struct {
	AssetID string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Handle  string `json:"handle,omitempty"`
}

// Encode serializes the payload for the drag channel.
func (p DragPayload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding drag payload: %w", err)
	}
	return data, nil
}

// DecodeDragPayload parses a drag payload received on the drag channel.
func DecodeDragPayload(data []byte) (*DragPayload, error) {
	var p DragPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.Type == "" {
		return nil, fmt.Errorf("%w: missing asset type", ErrMalformedPayload)
	}
	return &p, nil
}
