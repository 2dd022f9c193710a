package tags_test

import (
	"testing"

	"hxlsp/internal/tags"
)

func TestFirstTag(t *testing.T) {
	cases := []struct {
		line  string
		name  string
		start uint32
		end   uint32
		found bool
	}{
		{"# hx@main entry point", "hx@main", 2, 9, true},
		{"hx@solo", "hx@solo", 0, 7, true},
		{"// hx@first and hx@second", "hx@first", 3, 11, true},
		{"\t\thx@indented", "hx@indented", 2, 13, true},
		{"no tags on this line", "", 0, 0, false},
		{"", "", 0, 0, false},
		{"bare marker hx@ only", "", 0, 0, false},
		{"prefix-hx@glued works", "hx@glued", 7, 15, true},
	}

	for _, c := range cases {
		token, found := tags.FirstTag(c.line)
		if found != c.found {
			t.Errorf("%q: expected found=%v, got %v", c.line, c.found, found)
			continue
		}
		if !found {
			continue
		}
		if token.Name != c.name || token.Start != c.start || token.End != c.end {
			t.Errorf("%q: expected {%s %d %d}, got {%s %d %d}",
				c.line, c.name, c.start, c.end, token.Name, token.Start, token.End)
		}
	}
}

func TestFirstTagSkipsEmptyMarkerBeforeRealTag(t *testing.T) {
	token, found := tags.FirstTag("hx@ then hx@real")
	if !found {
		t.Fatal("expected a token")
	}
	if token.Name != "hx@real" || token.Start != 9 || token.End != 16 {
		t.Errorf("got {%s %d %d}", token.Name, token.Start, token.End)
	}
}

func TestSplitTags(t *testing.T) {
	tokens, ok := tags.SplitTags("hx@one hx@two", 10)
	if !ok {
		t.Fatal("expected value to split")
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Name != "hx@one" || tokens[0].Start != 10 || tokens[0].End != 16 {
		t.Errorf("first token: got {%s %d %d}", tokens[0].Name, tokens[0].Start, tokens[0].End)
	}
	if tokens[1].Name != "hx@two" || tokens[1].Start != 17 || tokens[1].End != 23 {
		t.Errorf("second token: got {%s %d %d}", tokens[1].Name, tokens[1].Start, tokens[1].End)
	}
}

func TestSplitTagsRejectsMalformedValues(t *testing.T) {
	for _, value := range []string{
		" hx@leading",
		"hx@double  hx@space",
		"hx@ok notatag",
		"hx@",
		"",
	} {
		if _, ok := tags.SplitTags(value, 0); ok {
			t.Errorf("%q: expected rejection", value)
		}
	}
}

// Both scanning conventions run over the same tokenizer, so a token found by
// FirstTag must be hit by TagAt at every column it spans.
func TestTokenBoundariesAgree(t *testing.T) {
	line := "# see hx@shared-handler for details"
	token, found := tags.FirstTag(line)
	if !found {
		t.Fatal("expected a token")
	}

	for col := token.Start; col <= token.End; col++ {
		hit, ok := tags.TagAt(line, col)
		if !ok || hit != token {
			t.Errorf("col %d: expected %v, got %v (ok=%v)", col, token, hit, ok)
		}
	}
	if _, ok := tags.TagAt(line, token.Start-1); ok {
		t.Error("expected miss before token start")
	}
	if _, ok := tags.TagAt(line, token.End+1); ok {
		t.Error("expected miss past token end")
	}
}

func TestTagUnderCursorSplitsQuotedValues(t *testing.T) {
	line := `<div hx-vals="hx@a hx@get-users"></div>`

	// The whole-line scan would swallow the closing quote and markup into
	// the last token; the quoted-value convention splits exactly.
	token, ok := tags.TagUnderCursor(line, 25)
	if !ok {
		t.Fatal("expected a token")
	}
	if token.Name != "hx@get-users" || token.Start != 19 || token.End != 31 {
		t.Errorf("got {%s %d %d}", token.Name, token.Start, token.End)
	}

	token, ok = tags.TagUnderCursor(line, 15)
	if !ok || token.Name != "hx@a" {
		t.Errorf("expected hx@a, got %v (ok=%v)", token, ok)
	}
}

func TestTagUnderCursorFallsBackOutsideQuotes(t *testing.T) {
	line := "see hx@plain text"

	token, ok := tags.TagUnderCursor(line, 6)
	if !ok || token.Name != "hx@plain" {
		t.Errorf("expected hx@plain, got %v (ok=%v)", token, ok)
	}
}

func TestTagUnderCursorFallsBackForMixedValues(t *testing.T) {
	// A quoted value that is not solely tags keeps the whole-line
	// convention.
	line := `<div class="foo hx@x"></div>`

	token, ok := tags.TagUnderCursor(line, 17)
	if !ok || token.Name != `hx@x"></div>` {
		t.Errorf("got %v (ok=%v)", token, ok)
	}
}

func TestTagAtPicksTokenUnderCursor(t *testing.T) {
	line := "hx@first hx@second"

	token, ok := tags.TagAt(line, 12)
	if !ok || token.Name != "hx@second" {
		t.Errorf("expected hx@second, got %v (ok=%v)", token, ok)
	}
	token, ok = tags.TagAt(line, 3)
	if !ok || token.Name != "hx@first" {
		t.Errorf("expected hx@first, got %v (ok=%v)", token, ok)
	}
}
