// ABOUTME: Tagged-union content block types with exhaustive dispatch over the known variants.
// ABOUTME: Serializes to the {"type": ..., "props": ...} wire shape and preserves unknown tags opaquely.
package block

import (
	"encoding/json"
	"fmt"
)

// Type is the discriminant tag of a content block.
type Type string

const (
	TypeHeader   Type = "Header"
	TypeHero     Type = "Hero"
	TypeMarkdown Type = "Markdown"
)

// KnownTypes lists every block variant the editor can create, in menu order.
var KnownTypes = []Type{TypeHeader, TypeHero, TypeMarkdown}

// Known reports whether t is one of the block variants this package models.
// Unknown tags are still carried through serialization, they just cannot be
// created from a template.
func (t Type) Known() bool {
	switch t {
	case TypeHeader, TypeHero, TypeMarkdown:
		return true
	default:
		return false
	}
}

// ButtonProps is a call-to-action button, reusable across block variants.
type ButtonProps struct {
	Href      string `json:"href"`
	Text      string `json:"text"`
	AriaLabel string `json:"aria_label"`
}

// HeaderProps is the props record for the Header variant.
type HeaderProps struct {
	Headline string      `json:"headline"`
	Button   ButtonProps `json:"button"`
}

// HeroProps is the props record for the Hero variant.
type HeroProps struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

// MarkdownProps is the props record for the Markdown variant.
type MarkdownProps struct {
	Body string `json:"body"`
}

// Block is one tagged content unit. Props holds the concrete props struct for
// a known Type (*HeaderProps, *HeroProps, *MarkdownProps) or the raw JSON for
// an unknown tag.
type Block struct {
	Type  Type
	Props any
}

// wireBlock is the JSON wire shape for a block.
type wireBlock struct {
	Type  Type            `json:"type"`
	Props json.RawMessage `json:"props"`
}

// MarshalJSON serializes the block into the tagged wire shape.
func (b Block) MarshalJSON() ([]byte, error) {
	var props any
	switch b.Type {
	case TypeHeader, TypeHero, TypeMarkdown:
		props = b.Props
	default:
		// Unknown variant: pass the preserved raw props through untouched.
		if raw, ok := b.Props.(json.RawMessage); ok {
			props = raw
		} else {
			props = b.Props
		}
	}

	if props == nil {
		props = json.RawMessage("{}")
	}

	rawProps, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshal %s props: %w", b.Type, err)
	}
	return json.Marshal(wireBlock{Type: b.Type, Props: rawProps})
}

// UnmarshalJSON decodes the tagged wire shape, dispatching on the type tag to
// the concrete props struct. Unknown tags keep their props as raw JSON.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode block envelope: %w", err)
	}

	props := w.Props
	if len(props) == 0 {
		props = json.RawMessage("{}")
	}

	b.Type = w.Type
	switch w.Type {
	case TypeHeader:
		p := &HeaderProps{}
		if err := json.Unmarshal(props, p); err != nil {
			return fmt.Errorf("decode Header props: %w", err)
		}
		b.Props = p
	case TypeHero:
		p := &HeroProps{}
		if err := json.Unmarshal(props, p); err != nil {
			return fmt.Errorf("decode Hero props: %w", err)
		}
		b.Props = p
	case TypeMarkdown:
		p := &MarkdownProps{}
		if err := json.Unmarshal(props, p); err != nil {
			return fmt.Errorf("decode Markdown props: %w", err)
		}
		b.Props = p
	default:
		raw := make(json.RawMessage, len(props))
		copy(raw, props)
		b.Props = raw
	}
	return nil
}

// Default returns a freshly allocated empty template for the given block
// type. The result never aliases a shared template, so callers may mutate it
// freely. Unknown types are rejected.
func Default(t Type) (Block, error) {
	switch t {
	case TypeHeader:
		return Block{Type: TypeHeader, Props: &HeaderProps{}}, nil
	case TypeHero:
		return Block{Type: TypeHero, Props: &HeroProps{}}, nil
	case TypeMarkdown:
		return Block{Type: TypeMarkdown, Props: &MarkdownProps{}}, nil
	default:
		return Block{}, fmt.Errorf("unknown block type %q", t)
	}
}

// Equal reports whether two blocks are structurally identical, comparing
// their canonical serialized forms field by field.
func (b Block) Equal(other Block) bool {
	left, err := json.Marshal(b)
	if err != nil {
		return false
	}
	right, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(left) == string(right)
}
