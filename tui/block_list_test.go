// ABOUTME: Tests for the block list: add/delete with rejection paths, serialization mirror, and rendering.
// ABOUTME: Validates that bad external JSON resets safely and that every mutation emits a precise change event.
package tui

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

func newTestList(c block.Collection) BlockListModel {
	m := NewBlockListModel(c)
	m.SetLogger(log.New(io.Discard, "", 0))
	return m
}

func TestBlockList_AddBlock_AppendsDefaultTemplate(t *testing.T) {
	m := newTestList(block.Collection{})
	cmd := m.AddBlock(block.TypeHeader)
	if cmd == nil {
		t.Fatal("AddBlock returned nil cmd")
	}

	msg, ok := cmd().(BlocksChangedMsg)
	if !ok {
		t.Fatalf("expected BlocksChangedMsg, got %T", cmd())
	}
	if msg.Action != ActionAdd || msg.Index != 0 || msg.BlockType != block.TypeHeader {
		t.Errorf("event = %+v", msg)
	}

	data := m.BlocksData()
	if data.Len() != 1 {
		t.Fatalf("Len = %d, want 1", data.Len())
	}
	props, ok := data.Blocks[0].Props.(*block.HeaderProps)
	if !ok {
		t.Fatalf("Props = %T, want *HeaderProps", data.Blocks[0].Props)
	}
	if props.Headline != "" {
		t.Errorf("template headline = %q, want empty", props.Headline)
	}

	want := `{"blocks":[{"type":"Header","props":{"headline":"","button":{"href":"","text":"","aria_label":""}}}]}`
	if m.BlocksJSON() != want {
		t.Errorf("BlocksJSON:\n got  %s\n want %s", m.BlocksJSON(), want)
	}
}

func TestBlockList_AddBlock_TemplatesNeverShared(t *testing.T) {
	m := newTestList(block.Collection{})
	_ = m.AddBlock(block.TypeHero)
	_ = m.AddBlock(block.TypeHero)

	data := m.BlocksData()
	data.Blocks[0].Props.(*block.HeroProps).Headline = "mutated"
	if m.BlocksData().Blocks[0].Props.(*block.HeroProps).Headline == "mutated" {
		t.Error("BlocksData returned a shared reference into the collection")
	}
}

func TestBlockList_AddBlock_RejectsUnknownType(t *testing.T) {
	m := newTestList(block.Collection{})
	if cmd := m.AddBlock(block.Type("Carousel")); cmd != nil {
		t.Error("unknown type produced a change event")
	}
	if m.Len() != 0 {
		t.Error("unknown type mutated the collection")
	}
}

func TestBlockList_DeleteBlock_RemovesByPosition(t *testing.T) {
	c := block.Collection{Blocks: []block.Block{
		{Type: block.TypeHeader, Props: &block.HeaderProps{Headline: "first"}},
		{Type: block.TypeHero, Props: &block.HeroProps{Headline: "second"}},
	}}
	m := newTestList(c)

	cmd := m.DeleteBlock(0)
	if cmd == nil {
		t.Fatal("DeleteBlock returned nil cmd")
	}
	msg := cmd().(BlocksChangedMsg)
	if msg.Action != ActionDelete || msg.Index != 0 || msg.BlockType != block.TypeHeader {
		t.Errorf("event = %+v", msg)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	if m.BlocksData().Blocks[0].Type != block.TypeHero {
		t.Error("wrong block deleted")
	}
}

func TestBlockList_DeleteBlock_RejectsOutOfRange(t *testing.T) {
	m := newTestList(block.Collection{Blocks: []block.Block{
		{Type: block.TypeHero, Props: &block.HeroProps{}},
	}})

	tests := []struct {
		name  string
		index int
	}{
		{name: "negative", index: -1},
		{name: "past end", index: 1},
		{name: "far past end", index: 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cmd := m.DeleteBlock(tt.index); cmd != nil {
				t.Error("out-of-range delete produced a change event")
			}
			if m.Len() != 1 {
				t.Error("out-of-range delete mutated the collection")
			}
		})
	}
}

func TestBlockList_SetBlocksJSON_MalformedResetsToEmpty(t *testing.T) {
	m := newTestList(block.Collection{Blocks: []block.Block{
		{Type: block.TypeHero, Props: &block.HeroProps{Headline: "keep?"}},
	}})

	cmd := m.SetBlocksJSON(`{not json`)
	if cmd == nil {
		t.Fatal("expected an error event command")
	}
	errMsg, ok := cmd().(BlocksErrorMsg)
	if !ok {
		t.Fatalf("expected BlocksErrorMsg, got %T", cmd())
	}
	if errMsg.Cause == nil {
		t.Error("BlocksErrorMsg without cause")
	}
	if m.Len() != 0 {
		t.Errorf("collection not reset: Len = %d", m.Len())
	}
	if m.BlocksJSON() != `{"blocks":null}` && m.BlocksJSON() != `{"blocks":[]}` {
		t.Errorf("serialized mirror not reset: %s", m.BlocksJSON())
	}
}

func TestBlockList_SetBlocksJSON_ValidReplacesCollection(t *testing.T) {
	m := newTestList(block.Collection{})
	cmd := m.SetBlocksJSON(`{"blocks":[{"type":"Hero","props":{"headline":"h","subheadline":"s"}}]}`)
	if cmd == nil {
		t.Fatal("expected a change event command")
	}
	msg := cmd().(BlocksChangedMsg)
	if msg.Action != ActionReplace {
		t.Errorf("Action = %q, want replace", msg.Action)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestBlockList_SetBlocksData_IsolatesCaller(t *testing.T) {
	m := newTestList(block.Collection{})
	external := block.Collection{Blocks: []block.Block{
		{Type: block.TypeHero, Props: &block.HeroProps{Headline: "h"}},
	}}
	_ = m.SetBlocksData(external)

	external.Blocks[0].Props.(*block.HeroProps).Headline = "mutated"
	if m.BlocksData().Blocks[0].Props.(*block.HeroProps).Headline == "mutated" {
		t.Error("SetBlocksData kept a reference to the caller's data")
	}
}

func TestBlockList_View_EmptyState(t *testing.T) {
	m := newTestList(block.Collection{})
	if !strings.Contains(m.View(), "No blocks yet") {
		t.Error("empty collection missing empty state")
	}
}

func TestBlockList_View_ShowsTypesAndProps(t *testing.T) {
	m := newTestList(block.Collection{Blocks: []block.Block{
		{Type: block.TypeHeader, Props: &block.HeaderProps{Headline: "My Site"}},
		{Type: block.TypeHero, Props: &block.HeroProps{Headline: "Big", Subheadline: "Small"}},
	}})
	view := m.View()
	for _, want := range []string{"Header", "Hero", "My Site", "Big"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBlockList_View_UnknownTypeShowsRawProps(t *testing.T) {
	c, err := block.ParseCollection([]byte(`{"blocks":[{"type":"Carousel","props":{"slides":3}}]}`))
	if err != nil {
		t.Fatalf("ParseCollection failed: %v", err)
	}
	m := newTestList(c)
	view := m.View()
	if !strings.Contains(view, "Carousel") || !strings.Contains(view, "slides") {
		t.Errorf("unknown block not rendered with raw props: %q", view)
	}
}
