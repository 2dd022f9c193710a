package tags

import "strings"

// Token is one hx@ occurrence within a line of text. Name runs from the
// hx@ prefix to the next whitespace; Start and End are columns relative to
// the scanned text, End exclusive.
type Token struct {
	Name  string
	Start uint32
	End   uint32
}

const marker = "hx@"

// scan finds every hx@ token in text. A token starts at an hx@ marker and
// extends over the following contiguous non-space characters; markers with
// no identifier behind them, or markers inside an already emitted token, are
// ignored. Both scanning conventions below are built on this single pass so
// they always agree on token boundaries.
func scan(text string) []Token {
	var tokens []Token
	offset := 0
	for {
		i := strings.Index(text[offset:], marker)
		if i < 0 {
			return tokens
		}
		start := offset + i
		end := start + len(marker)
		for end < len(text) && text[end] != ' ' && text[end] != '\t' {
			end++
		}
		if end > start+len(marker) {
			tokens = append(tokens, Token{
				Name:  text[start:end],
				Start: uint32(start),
				End:   uint32(end),
			})
		}
		offset = end
	}
}

// FirstTag returns the first hx@ token on line. This is the whole-line
// single-tag convention used by extraction and diagnostics.
func FirstTag(line string) (Token, bool) {
	tokens := scan(line)
	if len(tokens) == 0 {
		return Token{}, false
	}
	return tokens[0], true
}

// SplitTags tokenizes a value that consists solely of space-separated hx@
// tags, offsetting all columns by base. A leading space, a double space, or
// any part that is not an hx@ token rejects the whole value.
func SplitTags(value string, base uint32) ([]Token, bool) {
	if strings.HasPrefix(value, " ") || strings.Contains(value, "  ") {
		return nil, false
	}
	parts := strings.Split(value, " ")
	tokens := make([]Token, 0, len(parts))
	col := base
	for _, part := range parts {
		if !strings.HasPrefix(part, marker) || len(part) == len(marker) {
			return nil, false
		}
		tokens = append(tokens, Token{
			Name:  part,
			Start: col,
			End:   col + uint32(len(part)),
		})
		col += uint32(len(part)) + 1
	}
	return tokens, true
}

// TagAt returns the hx@ token under column col on line. A cursor sitting
// directly behind the last character still counts as inside.
func TagAt(line string, col uint32) (Token, bool) {
	for _, token := range scan(line) {
		if col >= token.Start && col <= token.End {
			return token, true
		}
	}
	return Token{}, false
}

// TagUnderCursor resolves the hx@ token under col, preferring the quoted
// value convention: when the cursor sits inside a quoted span whose content
// is solely space-separated tags, the value is split exactly, so a closing
// quote never leaks into a token. Everywhere else the whole-line scan
// applies.
func TagUnderCursor(line string, col uint32) (Token, bool) {
	if open, end, ok := quotedSpan(line, col); ok {
		if tokens, ok := SplitTags(line[open+1:end], uint32(open+1)); ok {
			for _, token := range tokens {
				if col >= token.Start && col <= token.End {
					return token, true
				}
			}
			return Token{}, false
		}
	}
	return TagAt(line, col)
}

// quotedSpan returns the byte offsets of the quote pair enclosing col.
func quotedSpan(line string, col uint32) (int, int, bool) {
	open := -1
	for i := 0; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		if uint32(open) < col && col <= uint32(i) {
			return open, i, true
		}
		open = -1
	}
	return 0, 0, false
}
