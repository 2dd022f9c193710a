package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"hxlsp/internal/files"
	"hxlsp/internal/lang"
	"hxlsp/internal/scanner"
	"hxlsp/internal/store"
	"hxlsp/internal/tags"
)

// Scan resets all project state and repopulates it from the configured
// directories. It holds the exclusive lock for the whole walk, which blocks
// per-file edit processing until the initial index is complete. Returned
// tags are the accumulated duplicate conflicts.
func (w *Workspace) Scan() ([]tags.Tag, error) {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	if w.cfg == nil {
		return nil, fmt.Errorf("cannot scan without a configuration")
	}

	w.index.Reset()
	w.registry.Reset()
	w.trees.Reset()

	var conflicts []tags.Tag
	groups := []struct {
		dirs []string
		cls  lang.Type
	}{
		{w.cfg.Templates, lang.Template},
		{w.cfg.JSTags, lang.JavaScript},
		{w.cfg.BackendTags, lang.Backend},
	}

	for _, group := range groups {
		cls := group.cls
		skip := func(path string, info fs.FileInfo) bool {
			return !claimedBy(w.cfg.Classify(path), cls)
		}
		callback := func(path string, document []byte) {
			w.addFile(path, cls, document, &conflicts)
		}
		for _, dir := range group.dirs {
			if err := scanner.Scan(dir, skip, callback); err != nil {
				return conflicts, fmt.Errorf("configured root %q does not exist", dir)
			}
		}
	}

	return conflicts, nil
}

func claimedBy(types []lang.Type, cls lang.Type) bool {
	for _, t := range types {
		if t == cls {
			return true
		}
	}
	return false
}

// addFile indexes one walked file. Files whose tag set is cached in the
// store with a matching mtime skip parsing entirely; their tree is built
// lazily when the editor opens them.
func (w *Workspace) addFile(path string, cls lang.Type, document []byte, conflicts *[]tags.Tag) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	uri := PathToURI(abs)

	id, ok := w.index.Register(uri)
	if !ok {
		// Claimed by an earlier classification group.
		return
	}

	if !cls.Taggable() {
		w.trees.Upsert(id, &cls, document)
		return
	}

	if w.loadCached(abs, id, conflicts) {
		return
	}

	w.trees.Upsert(id, &cls, document)
	entry, ok := w.trees.Get(id)
	if !ok {
		return
	}
	*conflicts = append(*conflicts, w.reconcile(id, entry)...)
	w.persist(abs, id)
}

// loadCached inserts the stored tag set for an unchanged file. Reports false
// whenever a fresh extraction is needed.
func (w *Workspace) loadCached(path string, id files.ID, conflicts *[]tags.Tag) bool {
	if w.store == nil {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	modified, ok, err := w.store.Modified(path)
	if err != nil || !ok || modified != info.ModTime().Unix() {
		return false
	}
	records, err := w.store.Tags(path)
	if err != nil {
		return false
	}

	for _, rec := range records {
		t := tagFromRecord(rec, id)
		if !w.registry.Insert(t) {
			*conflicts = append(*conflicts, t)
		}
	}
	return true
}

func tagFromRecord(rec store.TagRecord, id files.ID) tags.Tag {
	return tags.Tag{Name: rec.Name, Line: rec.Line, Start: rec.Start, End: rec.End, File: id}
}
