// ABOUTME: Canonical ordered block collection rendered as a navigable list with add/delete.
// ABOUTME: Every mutation reserializes into blocksJSON and emits BlocksChangedMsg; bad external JSON resets to empty.
package tui

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

// BlockListModel owns the canonical block collection. The collection is only
// mutated through AddBlock, DeleteBlock, SetBlocksData, and SetBlocksJSON;
// other components see it exclusively through emitted messages and the
// cloned accessors.
type BlockListModel struct {
	collection block.Collection
	blocksJSON string // serialized mirror of the collection
	cursor     int
	typeIdx    int // selected entry of block.KnownTypes for the add action
	focused    bool
	width      int
	height     int
	logger     *log.Logger
}

// NewBlockListModel creates a block list seeded from the given collection.
func NewBlockListModel(c block.Collection) BlockListModel {
	m := BlockListModel{collection: c.Clone(), logger: log.Default()}
	m.reserialize()
	return m
}

// SetLogger redirects rejection diagnostics, mainly for tests.
func (m *BlockListModel) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// BlocksData returns a deep copy of the current collection.
func (m BlockListModel) BlocksData() block.Collection {
	return m.collection.Clone()
}

// SetBlocksData replaces the collection with a deep copy of data and emits a
// full-refresh BlocksChangedMsg.
func (m *BlockListModel) SetBlocksData(data block.Collection) tea.Cmd {
	m.collection = data.Clone()
	m.clampCursor()
	m.reserialize()
	return m.emitChanged(ActionReplace, -1, "")
}

// BlocksJSON returns the serialized mirror of the collection, the analogue
// of the blocks attribute.
func (m BlockListModel) BlocksJSON() string {
	return m.blocksJSON
}

// SetBlocksJSON applies externally supplied JSON. Malformed input never
// corrupts the in-memory collection: it resets to empty and reports the
// cause through BlocksErrorMsg.
func (m *BlockListModel) SetBlocksJSON(raw string) tea.Cmd {
	c, err := block.ParseCollection([]byte(raw))
	if err != nil {
		m.logger.Printf("block list: rejecting external blocks JSON: %v", err)
		m.collection = block.Collection{Blocks: []block.Block{}}
		m.cursor = 0
		m.reserialize()
		return func() tea.Msg {
			return BlocksErrorMsg{Cause: err}
		}
	}
	return m.SetBlocksData(c)
}

// AddBlock appends a deep-cloned default template for the given type.
// Unknown types are rejected synchronously with a logged diagnostic and no
// mutation.
func (m *BlockListModel) AddBlock(t block.Type) tea.Cmd {
	b, err := block.Default(t)
	if err != nil {
		m.logger.Printf("block list: %v", err)
		return nil
	}
	m.collection.Blocks = append(m.collection.Blocks, b)
	m.cursor = len(m.collection.Blocks) - 1
	m.reserialize()
	return m.emitChanged(ActionAdd, m.cursor, t)
}

// DeleteBlock removes the block at index. Out-of-range indices are rejected
// synchronously with a logged diagnostic and no mutation.
func (m *BlockListModel) DeleteBlock(index int) tea.Cmd {
	if index < 0 || index >= len(m.collection.Blocks) {
		m.logger.Printf("block list: delete index %d out of range (len %d)", index, len(m.collection.Blocks))
		return nil
	}
	removed := m.collection.Blocks[index].Type
	m.collection.Blocks = append(m.collection.Blocks[:index], m.collection.Blocks[index+1:]...)
	m.clampCursor()
	m.reserialize()
	return m.emitChanged(ActionDelete, index, removed)
}

// Len returns the number of blocks.
func (m BlockListModel) Len() int {
	return len(m.collection.Blocks)
}

// Cursor returns the highlighted block index.
func (m BlockListModel) Cursor() int {
	return m.cursor
}

// SelectedType returns the block type the add action would create.
func (m BlockListModel) SelectedType() block.Type {
	return block.KnownTypes[m.typeIdx]
}

// SetFocused sets whether this panel accepts keyboard input.
func (m *BlockListModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the available dimensions.
func (m *BlockListModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles list navigation and mutation keys.
func (m *BlockListModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.collection.Blocks)-1 {
			m.cursor++
		}
	case "left", "h":
		m.typeIdx = (m.typeIdx + len(block.KnownTypes) - 1) % len(block.KnownTypes)
	case "right", "l":
		m.typeIdx = (m.typeIdx + 1) % len(block.KnownTypes)
	case "a", "enter":
		return m.AddBlock(m.SelectedType())
	case "d", "delete":
		return m.DeleteBlock(m.cursor)
	}
	return nil
}

// View renders the add selector, the block list, and the empty state.
func (m BlockListModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Blocks"))
	b.WriteString("\n")
	b.WriteString(m.addSelectorView())
	b.WriteString("\n\n")

	if len(m.collection.Blocks) == 0 {
		b.WriteString(EmptyStateStyle.Render("No blocks yet. Press 'a' to add one."))
		return b.String()
	}

	for i, blk := range m.collection.Blocks {
		marker := "  "
		if i == m.cursor && m.focused {
			marker = CursorStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(BlockTypeStyle.Render(string(blk.Type)))
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(BlockPropsStyle.Render(propsPreview(blk)))
		if i < len(m.collection.Blocks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m BlockListModel) addSelectorView() string {
	var parts []string
	for i, t := range block.KnownTypes {
		label := string(t)
		if i == m.typeIdx {
			label = CursorStyle.Render("[" + label + "]")
		} else {
			label = HelpStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}
	return "Add: " + strings.Join(parts, " ")
}

// propsPreview renders a compact single-line props summary for a list row.
func propsPreview(b block.Block) string {
	data, err := json.Marshal(b.Props)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	s := string(data)
	if len(s) > 72 {
		s = s[:69] + "..."
	}
	return s
}

// reserialize refreshes the blocksJSON mirror after a mutation. A collection
// built from this package's types always marshals; the guard keeps a stale
// mirror from silently masking a bug.
func (m *BlockListModel) reserialize() {
	data, err := m.collection.Marshal()
	if err != nil {
		m.logger.Printf("block list: reserialize: %v", err)
		return
	}
	m.blocksJSON = string(data)
}

func (m *BlockListModel) clampCursor() {
	if m.cursor >= len(m.collection.Blocks) {
		m.cursor = len(m.collection.Blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BlockListModel) emitChanged(action BlocksAction, index int, t block.Type) tea.Cmd {
	blocks := m.collection.Clone()
	return func() tea.Msg {
		return BlocksChangedMsg{Action: action, Index: index, BlockType: t, Blocks: blocks}
	}
}
