// ABOUTME: Ordered block collection with round-trip-stable serialization and structural comparison.
// ABOUTME: Matches the {"blocks": [...]} wire shape exchanged between the editor views and the publish API.
package block

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the ordered sequence of blocks that makes up a page.
// Insertion order is significant and survives every serialize/deserialize
// round trip.
type Collection struct {
	Blocks []Block `json:"blocks"`
}

// ParseCollection decodes the {"blocks": [...]} wire shape.
func ParseCollection(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return Collection{}, fmt.Errorf("parse block collection: %w", err)
	}
	if c.Blocks == nil {
		c.Blocks = []Block{}
	}
	return c, nil
}

// Marshal serializes the collection compactly.
func (c Collection) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// MarshalIndent serializes the collection with stable 2-space indentation,
// the format shown in the JSON editing surface.
func (c Collection) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Clone returns a deep copy of the collection. Props structs are reallocated
// so mutating the copy never writes through to the original.
func (c Collection) Clone() Collection {
	data, err := json.Marshal(c)
	if err != nil {
		// A collection built from this package's types always marshals;
		// fall back to an empty collection rather than sharing state.
		return Collection{}
	}
	var out Collection
	if err := json.Unmarshal(data, &out); err != nil {
		return Collection{}
	}
	if out.Blocks == nil {
		// Keep a nil original and its clone structurally identical on the
		// wire: both serialize as an empty blocks array.
		out.Blocks = []Block{}
	}
	return out
}

// Equal reports whether two collections are structurally identical: same
// length, same order, same field-level values.
func (c Collection) Equal(other Collection) bool {
	left, err := json.Marshal(c)
	if err != nil {
		return false
	}
	right, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// Len returns the number of blocks in the collection.
func (c Collection) Len() int {
	return len(c.Blocks)
}
