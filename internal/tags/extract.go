package tags

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"hxlsp/internal/lang"
)

// Extractor pulls hx@ tags out of the comment nodes of JavaScript and
// backend trees. Templates are never scanned. The compiled queries are safe
// to share; a fresh query cursor is created per call.
type Extractor struct {
	queries map[lang.Type]*sitter.Query
}

// NewExtractor compiles the comment queries. The JavaScript query is always
// available; the backend query only when the configured language is
// supported, so a degraded setup still extracts from JS files it is asked
// about.
func NewExtractor(backend string) (*Extractor, error) {
	queries := make(map[lang.Type]*sitter.Query)

	jsQuery, err := sitter.NewQuery(lang.CommentQuery(lang.JavaScript, ""), lang.Grammar(lang.JavaScript, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to compile javascript comment query: %w", err)
	}
	queries[lang.JavaScript] = jsQuery

	if grammar := lang.Grammar(lang.Backend, backend); grammar != nil {
		backendQuery, err := sitter.NewQuery(lang.CommentQuery(lang.Backend, backend), grammar)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s comment query: %w", backend, err)
		}
		queries[lang.Backend] = backendQuery
	}

	return &Extractor{queries: queries}, nil
}

// Extract returns every tag declared in the tree, at most one per comment
// line, with File left unset for the caller to fill. Error nodes in the tree
// are expected input: comments that did parse still yield their tags.
func (e *Extractor) Extract(t lang.Type, root *sitter.Node, source []byte) []Tag {
	query, ok := e.queries[t]
	if !ok || root == nil {
		return nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var found []Tag
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			if capture.Node == nil {
				continue
			}
			found = append(found, commentTags(capture.Node, source)...)
		}
	}
	return found
}

// commentTags scans the lines of one comment node for tags. Columns on the
// first line are offset by the node's start column; continuation lines of a
// block comment start at column zero.
func commentTags(node *sitter.Node, source []byte) []Tag {
	var found []Tag
	row := node.StartPoint().Row
	base := node.StartPoint().Column

	for i, line := range strings.Split(node.Content(source), "\n") {
		offset := uint32(0)
		if i == 0 {
			offset = base
		}
		if token, ok := FirstTag(line); ok {
			found = append(found, Tag{
				Name:  token.Name,
				Start: token.Start + offset,
				End:   token.End + offset,
				Line:  row + uint32(i),
			})
		}
	}
	return found
}
