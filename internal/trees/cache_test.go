package trees_test

import (
	"testing"

	"hxlsp/internal/lang"
	"hxlsp/internal/trees"
)

func TestUpsertAndGet(t *testing.T) {
	cache := trees.NewCache("python")

	cls := lang.Template
	cache.Upsert(1, &cls, []byte(`<div hx-get="/x"></div>`))

	entry, ok := cache.Get(1)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Lang != lang.Template {
		t.Errorf("expected template classification, got %v", entry.Lang)
	}
	if entry.Tree == nil || entry.Tree.RootNode() == nil {
		t.Fatal("expected a parsed tree")
	}
	if string(entry.Source) != `<div hx-get="/x"></div>` {
		t.Errorf("entry must carry the parsed text, got %q", entry.Source)
	}
}

func TestClassificationIsSticky(t *testing.T) {
	cache := trees.NewCache("python")

	cls := lang.Backend
	cache.Upsert(1, &cls, []byte("# hx@a\n"))

	// Later upserts never change the classification, with or without one.
	other := lang.Template
	cache.Upsert(1, &other, []byte("# hx@b\n"))
	cache.Upsert(1, nil, []byte("# hx@c\n"))

	entry, ok := cache.Get(1)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Lang != lang.Backend {
		t.Errorf("classification must stay backend, got %v", entry.Lang)
	}
	if string(entry.Source) != "# hx@c\n" {
		t.Errorf("text must be the latest, got %q", entry.Source)
	}
}

func TestUpsertWithoutClassificationIsNoOp(t *testing.T) {
	cache := trees.NewCache("python")

	cache.Upsert(7, nil, []byte("<div></div>"))

	if _, ok := cache.Get(7); ok {
		t.Error("expected no entry for unclassified first contact")
	}
}

func TestUnsupportedBackendLeavesFilesUnparsed(t *testing.T) {
	cache := trees.NewCache("cobol")

	cls := lang.Backend
	cache.Upsert(1, &cls, []byte("IDENTIFICATION DIVISION."))
	if _, ok := cache.Get(1); ok {
		t.Error("expected no entry without a backend grammar")
	}

	// The other domains still parse.
	tmpl := lang.Template
	cache.Upsert(2, &tmpl, []byte("<div></div>"))
	if _, ok := cache.Get(2); !ok {
		t.Error("expected template entry")
	}
}

func TestMalformedInputStillYieldsTree(t *testing.T) {
	cache := trees.NewCache("")

	cls := lang.Template
	cache.Upsert(1, &cls, []byte(`<div hx-swap=" ><`))

	entry, ok := cache.Get(1)
	if !ok || entry.Tree == nil {
		t.Fatal("expected a tree for malformed input")
	}
	if !entry.Tree.RootNode().HasError() {
		t.Error("expected error recovery nodes in the tree")
	}
}

func TestReset(t *testing.T) {
	cache := trees.NewCache("")

	cls := lang.Template
	cache.Upsert(1, &cls, []byte("<div></div>"))
	cache.Reset()

	if _, ok := cache.Get(1); ok {
		t.Error("expected empty cache after reset")
	}

	// Parsers survive a reset.
	cache.Upsert(2, &cls, []byte("<span></span>"))
	if _, ok := cache.Get(2); !ok {
		t.Error("expected cache to keep working after reset")
	}
}
