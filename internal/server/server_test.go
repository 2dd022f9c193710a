package server

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxlsp/internal/htmx"
)

func TestNewServer(t *testing.T) {
	srv, err := NewServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil {
		t.Fatal("expected a server")
	}
}

func TestToPoint(t *testing.T) {
	point := toPoint(protocol.Position{Line: 3, Character: 14})
	if point.Row != 3 || point.Column != 14 {
		t.Errorf("got %+v", point)
	}
}

func TestAttributeCompletions(t *testing.T) {
	items := attributeCompletions()
	if len(items) != len(htmx.Attributes) {
		t.Fatalf("expected %d items, got %d", len(htmx.Attributes), len(items))
	}
	for _, item := range items {
		if item.Detail == nil || *item.Detail == "" {
			t.Errorf("%s: missing detail", item.Label)
		}
	}
}

func TestValueCompletions(t *testing.T) {
	entries := htmx.Values["hx-swap"]
	items := valueCompletions(entries)
	if len(items) != len(entries) {
		t.Fatalf("expected %d items, got %d", len(entries), len(items))
	}
	if items[0].Label != entries[0].Name {
		t.Errorf("expected %s, got %s", entries[0].Name, items[0].Label)
	}
}

func TestMarkdownHover(t *testing.T) {
	hover := markdownHover("some *markdown*")
	content, ok := hover.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("expected markup content, got %T", hover.Contents)
	}
	if content.Kind != protocol.MarkupKindMarkdown || content.Value != "some *markdown*" {
		t.Errorf("got %+v", content)
	}
}
