// Package lang maps file classifications to tree-sitter grammars and the
// comment queries used for tag extraction. Adding a language means adding a
// grammar binding and a query here; call sites dispatch on Type only.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

// Type classifies a file into one of the three lexical domains.
type Type int

const (
	Template Type = iota
	JavaScript
	Backend
)

func (t Type) String() string {
	switch t {
	case Template:
		return "template"
	case JavaScript:
		return "javascript"
	case Backend:
		return "backend"
	}
	return "unknown"
}

// Taggable reports whether files of this classification may declare hx@ tags.
// Templates only reference tags, they never produce them.
func (t Type) Taggable() bool {
	return t == JavaScript || t == Backend
}

// SupportedBackend reports whether name is a backend language we have a
// grammar for.
func SupportedBackend(name string) bool {
	switch name {
	case "python", "rust", "go":
		return true
	}
	return false
}

// BackendExtension returns the file extension (without dot) for a supported
// backend language, or "" if the language is unknown.
func BackendExtension(name string) string {
	switch name {
	case "python":
		return "py"
	case "rust":
		return "rs"
	case "go":
		return "go"
	}
	return ""
}

// Grammar returns the tree-sitter language for a classification. The backend
// grammar is selected by the configured language name; nil is returned for an
// unsupported backend so callers can degrade instead of parsing garbage.
func Grammar(t Type, backend string) *sitter.Language {
	switch t {
	case Template:
		return html.GetLanguage()
	case JavaScript:
		return javascript.GetLanguage()
	case Backend:
		switch backend {
		case "python":
			return python.GetLanguage()
		case "rust":
			return rust.GetLanguage()
		case "go":
			return golang.GetLanguage()
		}
	}
	return nil
}

// CommentQuery returns the tree query capturing comment nodes for a taggable
// classification. Templates have no comment query: they never declare tags.
func CommentQuery(t Type, backend string) []byte {
	switch t {
	case JavaScript:
		return []byte(`(comment) @comment`)
	case Backend:
		switch backend {
		case "python", "go":
			return []byte(`(comment) @comment`)
		case "rust":
			return []byte(`[(line_comment) (block_comment)] @comment`)
		}
	}
	return nil
}
