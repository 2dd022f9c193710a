// Package workspace wires the document index, tree cache, tag registry and
// position resolver into the operations the protocol layer calls. It owns
// the in-memory document text and all mutable project state; nothing here is
// a package-level global.
package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"hxlsp/internal/config"
	"hxlsp/internal/files"
	"hxlsp/internal/lang"
	"hxlsp/internal/position"
	"hxlsp/internal/store"
	"hxlsp/internal/tags"
	"hxlsp/internal/trees"
)

// Location is a goto-definition result: the declaring file and the tag span
// within it.
type Location struct {
	URI string
	Tag tags.Tag
}

// Workspace is constructed once at startup. Without a configuration it runs
// degraded: position resolution works, the tag registry stays empty.
type Workspace struct {
	// scanMu is held exclusively for the reset-and-repopulate walk and
	// shared by per-file request processing, so edits cannot interleave
	// with a rescan.
	scanMu sync.RWMutex

	cfg       *config.Config
	index     *files.Index
	registry  *tags.Registry
	trees     *trees.Cache
	extractor *tags.Extractor
	resolver  *position.Resolver

	store *store.Store
}

func New() (*Workspace, error) {
	resolver, err := position.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver: %w", err)
	}
	extractor, err := tags.NewExtractor("")
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor: %w", err)
	}

	return &Workspace{
		index:     files.NewIndex(),
		registry:  tags.NewRegistry(),
		trees:     trees.NewCache(""),
		extractor: extractor,
		resolver:  resolver,
	}, nil
}

// Configure validates and installs the project configuration, rebuilding the
// backend parser and extractor for the configured language. All indexed
// state is reset; the caller follows up with Scan.
func (w *Workspace) Configure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	extractor, err := tags.NewExtractor(cfg.Lang)
	if err != nil {
		return err
	}

	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	w.cfg = &cfg
	w.extractor = extractor
	w.trees = trees.NewCache(cfg.Lang)
	w.index.Reset()
	w.registry.Reset()
	return nil
}

// Configured reports whether a valid configuration is installed.
func (w *Workspace) Configured() bool {
	w.scanMu.RLock()
	defer w.scanMu.RUnlock()
	return w.cfg != nil
}

// SetStore attaches the persistent tag index. Optional; everything works
// without it, just without warm restarts. Stored tag sets are only
// trustworthy under the configuration that produced them, so a configuration
// change empties the store before it is used.
func (w *Workspace) SetStore(st *store.Store) {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	w.store = st
	if st == nil || w.cfg == nil {
		return
	}

	fingerprint, err := json.Marshal(w.cfg)
	if err != nil {
		return
	}
	recorded, err := st.Fingerprint()
	if err != nil || recorded == string(fingerprint) {
		return
	}
	if err := st.Clear(); err != nil {
		log.Println("workspace: failed to clear stale store:", err)
		return
	}
	if err := st.SetFingerprint(string(fingerprint)); err != nil {
		log.Println("workspace: failed to record configuration:", err)
	}
}

// OnEdit reparses the new document text under the file's sticky
// classification (first contact establishes one) and for taggable files
// reconciles the registry. Returned tags are duplicate conflicts.
func (w *Workspace) OnEdit(uri string, text []byte) []tags.Tag {
	w.scanMu.RLock()
	defer w.scanMu.RUnlock()

	id, ok := w.index.Lookup(uri)
	if !ok {
		var registered bool
		if id, registered = w.index.Register(uri); !registered {
			// A concurrent first edit won the registration; use its ID.
			id, _ = w.index.Lookup(uri)
		}
	}

	if _, ok := w.trees.Get(id); ok {
		w.trees.Upsert(id, nil, text)
	} else {
		cls := w.classify(uri)
		w.trees.Upsert(id, &cls, text)
	}

	entry, ok := w.trees.Get(id)
	if !ok || !entry.Lang.Taggable() {
		return nil
	}
	return w.reconcile(id, entry)
}

// OnSave re-runs extraction and reconciliation for an already open file and
// refreshes the persistent index. Template files never produce tags and are
// skipped.
func (w *Workspace) OnSave(uri string) []tags.Tag {
	w.scanMu.RLock()
	defer w.scanMu.RUnlock()

	id, ok := w.index.Lookup(uri)
	if !ok {
		return nil
	}
	entry, ok := w.trees.Get(id)
	if !ok || !entry.Lang.Taggable() {
		return nil
	}

	conflicts := w.reconcile(id, entry)
	w.persist(URIToPath(uri), id)
	return conflicts
}

// Resolve classifies the cursor position in a template document. Files of
// other classifications have no hx- attributes to resolve.
func (w *Workspace) Resolve(uri string, point sitter.Point, mode position.Mode) position.Position {
	w.scanMu.RLock()
	defer w.scanMu.RUnlock()

	id, ok := w.index.Lookup(uri)
	if !ok {
		return nil
	}
	entry, ok := w.trees.Get(id)
	if !ok || entry.Lang != lang.Template {
		return nil
	}
	return w.resolver.Resolve(entry.Tree.RootNode(), entry.Source, point, mode)
}

// Definition finds the hx@ token under the cursor on the current line and
// looks its declaration up in the registry. Inside quoted attribute values
// the exact space-split convention applies, so a closing quote never leaks
// into the looked-up name.
func (w *Workspace) Definition(uri string, point sitter.Point) (Location, bool) {
	w.scanMu.RLock()
	defer w.scanMu.RUnlock()

	id, ok := w.index.Lookup(uri)
	if !ok {
		return Location{}, false
	}
	entry, ok := w.trees.Get(id)
	if !ok {
		return Location{}, false
	}

	token, ok := tags.TagUnderCursor(lineAt(entry.Source, point.Row), point.Column)
	if !ok {
		return Location{}, false
	}
	t, ok := w.registry.Lookup(token.Name)
	if !ok {
		return Location{}, false
	}
	target, ok := w.index.URI(t.File)
	if !ok {
		return Location{}, false
	}
	return Location{URI: target, Tag: t}, true
}

// LookupTag exposes registry lookups by literal tag text.
func (w *Workspace) LookupTag(name string) (tags.Tag, bool) {
	return w.registry.Lookup(name)
}

// URI is the reverse file-ID lookup, used when turning conflicts into
// per-document diagnostics.
func (w *Workspace) URI(id files.ID) (string, bool) {
	return w.index.URI(id)
}

// classify derives the first-contact classification for a file. Without a
// configuration everything counts as a template, which keeps resolution
// working and the registry empty.
func (w *Workspace) classify(uri string) lang.Type {
	if w.cfg == nil {
		return lang.Template
	}
	if types := w.cfg.Classify(URIToPath(uri)); len(types) > 0 {
		return types[0]
	}
	return lang.Template
}

// reconcile deletes the file's old tags and inserts the freshly extracted
// set. Insertions losing the uniqueness race are returned as conflicts.
// Running it twice over identical text yields identical results: the delete
// step guarantees a file never conflicts with itself.
func (w *Workspace) reconcile(id files.ID, entry trees.Entry) []tags.Tag {
	found := w.extractor.Extract(entry.Lang, entry.Tree.RootNode(), entry.Source)
	w.registry.DeleteFile(id)

	var conflicts []tags.Tag
	for _, t := range found {
		t.File = id
		if !w.registry.Insert(t) {
			conflicts = append(conflicts, t)
		}
	}
	return conflicts
}

// persist writes the file's registered tags and mtime to the store. Failures
// only cost a warm start, so they are logged and dropped.
func (w *Workspace) persist(path string, id files.ID) {
	if w.store == nil {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	owned := w.registry.File(id)
	records := make([]store.TagRecord, 0, len(owned))
	for _, t := range owned {
		records = append(records, store.TagRecord{Name: t.Name, Line: t.Line, Start: t.Start, End: t.End})
	}
	if err := w.store.PutFile(path, info.ModTime().Unix(), records); err != nil {
		log.Println("workspace: failed to persist tags:", path, err)
	}
}

// lineAt returns the row-th line of document, without the trailing newline.
func lineAt(document []byte, row uint32) string {
	start := 0
	for ; row > 0; row-- {
		i := bytes.IndexByte(document[start:], '\n')
		if i < 0 {
			return ""
		}
		start += i + 1
	}
	end := bytes.IndexByte(document[start:], '\n')
	if end < 0 {
		return string(document[start:])
	}
	return string(document[start : start+end])
}
