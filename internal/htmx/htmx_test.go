package htmx_test

import (
	"strings"
	"testing"

	"hxlsp/internal/htmx"
)

func TestAttributeLookup(t *testing.T) {
	entry, ok := htmx.Attribute("hx-get")
	if !ok {
		t.Fatal("expected hx-get to be known")
	}
	if entry.Name != "hx-get" || entry.Desc == "" {
		t.Errorf("got %+v", entry)
	}

	if _, ok := htmx.Attribute("hx-bogus"); ok {
		t.Error("expected unknown attribute to miss")
	}
	if _, ok := htmx.Attribute("class"); ok {
		t.Error("expected non-hx attribute to miss")
	}
}

func TestValueLookup(t *testing.T) {
	entry, ok := htmx.Value("hx-swap", "outerHTML")
	if !ok {
		t.Fatal("expected hx-swap outerHTML to be known")
	}
	if entry.Name != "outerHTML" || entry.Desc == "" {
		t.Errorf("got %+v", entry)
	}

	if _, ok := htmx.Value("hx-swap", "bogus"); ok {
		t.Error("expected unknown value to miss")
	}
	if _, ok := htmx.Value("hx-get", "/route"); ok {
		t.Error("expected free-form attribute to have no value table")
	}
}

func TestTableShape(t *testing.T) {
	seen := make(map[string]bool)
	for _, entry := range htmx.Attributes {
		if !strings.HasPrefix(entry.Name, "hx-") {
			t.Errorf("%s: attribute without hx- prefix", entry.Name)
		}
		if entry.Desc == "" {
			t.Errorf("%s: empty description", entry.Name)
		}
		if seen[entry.Name] {
			t.Errorf("%s: duplicate attribute", entry.Name)
		}
		seen[entry.Name] = true
	}

	for attribute, values := range htmx.Values {
		if _, ok := htmx.Attribute(attribute); !ok {
			t.Errorf("%s: value table for unknown attribute", attribute)
		}
		if len(values) == 0 {
			t.Errorf("%s: empty value table", attribute)
		}
	}
}
