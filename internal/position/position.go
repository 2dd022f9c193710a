// Package position resolves an editor cursor against a markup syntax tree:
// which hx- attribute name or value is the cursor inside, given that the
// tree is usually mid-edit and full of error-recovery nodes.
package position

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

// Mode selects the disambiguation rules: hovering an unfinished attribute
// behaves differently from completing one.
type Mode int

const (
	Hover Mode = iota
	Completion
)

// FreshName is the sentinel attribute name returned in Completion mode when
// the cursor sits past an unfinished attribute: nothing specific is typed
// yet, suggest fresh attribute names.
const FreshName = "--"

// Position is the resolution result: the cursor is over an attribute name,
// or over an attribute value. It carries text only; trees are ephemeral
// relative to callers.
type Position interface {
	position()
}

type AttributeName struct {
	Name string
}

type AttributeValue struct {
	Name  string
	Value string
}

func (AttributeName) position()  {}
func (AttributeValue) position() {}

// captureDetails holds one named capture from a pattern run: its text and
// where it ends.
type captureDetails struct {
	value string
	end   sitter.Point
}

// Resolver holds the compiled name and value queries. Queries are safe to
// share between goroutines; a cursor is created per resolution.
type Resolver struct {
	name  *sitter.Query
	value *sitter.Query
}

func NewResolver() (*Resolver, error) {
	grammar := html.GetLanguage()

	name, err := sitter.NewQuery(nameQuery, grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to compile attribute name query: %w", err)
	}
	value, err := sitter.NewQuery(valueQuery, grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to compile attribute value query: %w", err)
	}

	return &Resolver{name: name, value: value}, nil
}

// Resolve classifies the cursor position. It returns nil when the cursor is
// not over any hx- construct, which is the normal case, not a fault.
func (r *Resolver) Resolve(root *sitter.Node, source []byte, point sitter.Point, mode Mode) Position {
	if root == nil {
		return nil
	}
	node := root.NamedDescendantForPointRange(point, point)
	if node == nil {
		return nil
	}
	element := enclosingElement(node)
	if element == nil {
		return nil
	}

	if pos := r.resolveName(element, source, point, mode); pos != nil {
		return pos
	}
	return r.resolveValue(element, source, point, mode)
}

// enclosingElement walks ancestors up to the nearest container the attribute
// patterns run in: an element, or the document root when error recovery
// hoists a half-typed attribute into a top-level ERROR node.
func enclosingElement(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "element", "document":
			return node
		}
		node = node.Parent()
	}
	return nil
}

func (r *Resolver) resolveName(element *sitter.Node, source []byte, point sitter.Point, mode Mode) Position {
	props := queryProps(r.name, element, source, point)

	attrName, ok := props["attr_name"]
	if !ok {
		return nil
	}

	if unfinished, ok := props["unfinished_tag"]; ok {
		if mode == Hover {
			// Hovering a half-typed attribute only means something when a
			// completed sibling matched too and the cursor is still on it.
			if _, ok := props["complete_match"]; ok && pointLTE(point, attrName.end) {
				return AttributeName{Name: attrName.value}
			}
			return nil
		}
		if mode == Completion && pointGT(point, unfinished.end) {
			return AttributeName{Name: FreshName}
		}
		if _, ok := props["equal_error"]; ok && mode == Completion {
			// Could equally be the start of a value; suggesting names here
			// would be wrong, so suggest nothing.
			return nil
		}
	}

	return AttributeName{Name: attrName.value}
}

func (r *Resolver) resolveValue(element *sitter.Node, source []byte, point sitter.Point, mode Mode) Position {
	props := queryProps(r.value, element, source, point)

	attrName, ok := props["attr_name"]
	if !ok {
		return nil
	}

	if mode == Hover && pointLT(point, attrName.end) {
		// Still over the name, not the value.
		return AttributeName{Name: attrName.value}
	}

	_, openQuote := props["open_quote_error"]
	_, emptyAttr := props["empty_attribute"]
	if openQuote || emptyAttr {
		if mode == Completion {
			if quoted, ok := props["quoted_attr_value"]; ok && pointGTE(point, quoted.end) {
				return nil
			}
		}
		return AttributeValue{Name: attrName.value}
	}

	if errorChar, ok := props["error_char"]; ok && errorChar.value == "=" {
		return nil
	}

	value := ""
	if nonEmpty, ok := props["non_empty_attribute"]; ok {
		if pointGTE(point, nonEmpty.end) {
			return nil
		}
		if attrValue, ok := props["attr_value"]; ok && mode == Hover {
			value = attrValue.value
		}
	}

	return AttributeValue{Name: attrName.value, Value: value}
}

// queryProps runs a pattern over the element and folds the captures starting
// at or before the cursor into a map keyed by capture name. Later captures
// overwrite earlier ones, so each key holds the candidate closest to the
// cursor.
func queryProps(query *sitter.Query, element *sitter.Node, source []byte, point sitter.Point) map[string]captureDetails {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, element)

	props := make(map[string]captureDetails)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			if capture.Node == nil || pointGT(capture.Node.StartPoint(), point) {
				continue
			}
			props[query.CaptureNameForId(capture.Index)] = captureDetails{
				value: capture.Node.Content(source),
				end:   capture.Node.EndPoint(),
			}
		}
	}
	return props
}

// Point order is lexicographic on (row, column); end boundaries are
// exclusive for "still inside" checks.

func pointLT(a, b sitter.Point) bool {
	return a.Row < b.Row || (a.Row == b.Row && a.Column < b.Column)
}

func pointLTE(a, b sitter.Point) bool {
	return !pointLT(b, a)
}

func pointGT(a, b sitter.Point) bool {
	return pointLT(b, a)
}

func pointGTE(a, b sitter.Point) bool {
	return !pointLT(a, b)
}
