// ABOUTME: Bubble Tea message types forming the typed event contract between editor components.
// ABOUTME: Each type replaces a DOM custom event with a discriminated payload routed by the AppModel.
package tui

import (
	"encoding/json"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

// BlocksAction names the mutation a BlocksChangedMsg describes.
type BlocksAction string

const (
	ActionAdd     BlocksAction = "add"
	ActionDelete  BlocksAction = "delete"
	ActionReplace BlocksAction = "replace"
)

// BlocksChangedMsg announces a mutation of the canonical block collection.
// Consumers can apply either a full refresh from Blocks or an incremental
// update from Action/Index/BlockType.
type BlocksChangedMsg struct {
	Action    BlocksAction
	Index     int
	BlockType block.Type
	Blocks    block.Collection
}

// BlocksErrorMsg reports that externally supplied blocks JSON could not be
// applied and the collection was reset to empty.
type BlocksErrorMsg struct {
	Cause error
}

// ContentChangedMsg fires synchronously on every edit of a JSON surface,
// before the debounced validation completes. IsValid comes from a cheap
// parse attempt and lets consumers show typing feedback.
type ContentChangedMsg struct {
	Value   string
	IsValid bool
}

// JSONValidMsg is the authoritative post-debounce result for valid text.
type JSONValidMsg struct {
	Value  string
	Parsed json.RawMessage
}

// JSONInvalidMsg is the authoritative post-debounce result for invalid text.
// Error is the human-readable message from the JSON parser.
type JSONInvalidMsg struct {
	Value string
	Error string
}

// TabChangedMsg fires only when the active tab actually changes.
type TabChangedMsg struct {
	ActiveTab   string
	PreviousTab string
}

// MessageDismissedMsg carries the text of a banner that was just hidden,
// whether by timeout or by the user.
type MessageDismissedMsg struct {
	Text string
}

// EditorLoadErrorMsg reports that the rich editing surface failed to
// initialize and the plain fallback is in use. Editing capability is
// unaffected.
type EditorLoadErrorMsg struct {
	Err error
}

// JSONFormatErrorMsg reports that a value handed to SetFormattedValue could
// not be serialized. The surface's text is left untouched.
type JSONFormatErrorMsg struct {
	Err error
}

// PublishResultMsg reports the outcome of a publish action.
type PublishResultMsg struct {
	Route string
	Err   error
}

// debounceTickMsg is the internal timer message that closes a surface's
// debounce window. Stale generations are ignored, which is what coalesces
// rapid edits into a single validation pass.
type debounceTickMsg struct {
	surfaceID int
	gen       int
}

// bannerTickMsg is the internal auto-dismiss timer message. A restart of the
// banner bumps the generation, invalidating any timer already in flight.
type bannerTickMsg struct {
	gen int
}
