// Package trees owns the per-file syntax trees and the three stateful parser
// instances (one per lexical domain). Parsing never fails the request path:
// malformed input yields a tree with error nodes, which downstream code
// treats as ordinary structure.
package trees

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"hxlsp/internal/files"
	"hxlsp/internal/lang"
)

// Entry couples a parsed tree with the classification it was parsed under
// and the exact text it was parsed from, so node spans always index into
// matching bytes. The classification is sticky: it never changes without the
// entry being deleted and recreated.
type Entry struct {
	Tree   *sitter.Tree
	Lang   lang.Type
	Source []byte
}

// Cache maps file IDs to tree entries. A single exclusive lock guards
// parse-and-replace, since the underlying parsers are stateful; replacement
// is an atomic swap, so readers see either the old tree or the new one,
// never a half-built entry. Old trees are left to the garbage collector
// because readers may still hold them.
type Cache struct {
	mu      sync.RWMutex
	parsers map[lang.Type]*sitter.Parser
	entries map[files.ID]Entry
}

// NewCache builds parsers for the markup and script domains and, when the
// backend language is supported, for the backend domain. An unknown backend
// simply leaves backend files unparsed.
func NewCache(backend string) *Cache {
	parsers := make(map[lang.Type]*sitter.Parser)
	for _, t := range []lang.Type{lang.Template, lang.JavaScript, lang.Backend} {
		grammar := lang.Grammar(t, backend)
		if grammar == nil {
			continue
		}
		p := sitter.NewParser()
		p.SetLanguage(grammar)
		parsers[t] = p
	}
	return &Cache{
		parsers: parsers,
		entries: make(map[files.ID]Entry),
	}
}

// Upsert reparses the file and swaps the entry. An existing entry keeps its
// classification regardless of cls; a missing entry requires cls, otherwise
// the call is a no-op.
func (c *Cache) Upsert(id files.ID, cls *lang.Type, text []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := lang.Template
	if entry, ok := c.entries[id]; ok {
		t = entry.Lang
	} else if cls != nil {
		t = *cls
	} else {
		return
	}

	parser, ok := c.parsers[t]
	if !ok {
		return
	}
	tree := parser.Parse(nil, text)
	if tree == nil {
		return
	}
	c.entries[id] = Entry{Tree: tree, Lang: t, Source: text}
}

// Get returns the current entry for id.
func (c *Cache) Get(id files.ID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	return entry, ok
}

// Reset drops all entries. Parser instances are kept.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[files.ID]Entry)
}
