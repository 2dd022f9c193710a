package tags_test

import (
	"fmt"
	"sync"
	"testing"

	"hxlsp/internal/tags"
)

func TestRegistryInsertAndLookup(t *testing.T) {
	reg := tags.NewRegistry()

	first := tags.Tag{Name: "hx@main", Line: 3, Start: 2, End: 9, File: 1}
	if !reg.Insert(first) {
		t.Fatal("expected first insert to succeed")
	}

	duplicate := tags.Tag{Name: "hx@main", Line: 7, Start: 0, End: 7, File: 2}
	if reg.Insert(duplicate) {
		t.Fatal("expected duplicate insert to fail")
	}

	got, ok := reg.Lookup("hx@main")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if got != first {
		t.Errorf("duplicate insert must not overwrite: got %v, want %v", got, first)
	}
}

func TestRegistryDeleteFileFreesNames(t *testing.T) {
	reg := tags.NewRegistry()
	reg.Insert(tags.Tag{Name: "hx@a", File: 1})
	reg.Insert(tags.Tag{Name: "hx@b", File: 1})
	reg.Insert(tags.Tag{Name: "hx@c", File: 2})

	reg.DeleteFile(1)

	if reg.Len() != 1 {
		t.Fatalf("expected 1 tag left, got %d", reg.Len())
	}
	if _, ok := reg.Lookup("hx@c"); !ok {
		t.Error("tag of another file must survive")
	}

	// Freed names are available again, now under a new owner.
	if !reg.Insert(tags.Tag{Name: "hx@a", File: 2}) {
		t.Error("expected freed name to be insertable")
	}
}

func TestRegistryFile(t *testing.T) {
	reg := tags.NewRegistry()
	reg.Insert(tags.Tag{Name: "hx@a", File: 1})
	reg.Insert(tags.Tag{Name: "hx@b", File: 2})
	reg.Insert(tags.Tag{Name: "hx@c", File: 1})

	owned := reg.File(1)
	if len(owned) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(owned))
	}
	for _, tag := range owned {
		if tag.File != 1 {
			t.Errorf("tag %v does not belong to file 1", tag)
		}
	}
}

func TestRegistryConcurrentInsertSameName(t *testing.T) {
	reg := tags.NewRegistry()

	const workers = 32
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- reg.Insert(tags.Tag{Name: "hx@contended", File: 1, Line: uint32(i)})
		}(i)
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one winning insert, got %d", wins)
	}
}

func TestRegistryReset(t *testing.T) {
	reg := tags.NewRegistry()
	for i := 0; i < 5; i++ {
		reg.Insert(tags.Tag{Name: fmt.Sprintf("hx@t%d", i)})
	}

	reg.Reset()

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
}
