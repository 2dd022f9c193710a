// Package files tracks file identity: every canonical URI gets one numeric
// ID for the lifetime of the session, so trees and tags can reference files
// across reparse cycles.
package files

import "sync"

// ID identifies a file within a session. IDs are assigned monotonically and
// never reused; a full Reset is the only way to discard them.
type ID int

// Index is a bijective URI <-> ID table. All methods are safe for concurrent
// use; Register is an atomic check-and-set so two concurrent opens of the
// same URI cannot mint two IDs.
type Index struct {
	mu   sync.RWMutex
	next ID
	ids  map[string]ID
}

func NewIndex() *Index {
	return &Index{ids: make(map[string]ID)}
}

// Register assigns a fresh ID to uri. Returns false if the URI is already
// registered; registration is never an update.
func (ix *Index) Register(uri string) (ID, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.ids[uri]; ok {
		return 0, false
	}
	id := ix.next
	ix.next++
	ix.ids[uri] = id
	return id, true
}

// Lookup returns the ID for uri, if registered.
func (ix *Index) Lookup(uri string) (ID, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	id, ok := ix.ids[uri]
	return id, ok
}

// URI is the reverse lookup. The index holds one entry per project file, so
// a linear scan is fine.
func (ix *Index) URI(id ID) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for uri, got := range ix.ids {
		if got == id {
			return uri, true
		}
	}
	return "", false
}

// Len returns the number of registered files.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.ids)
}

// Reset drops all entries and restarts the counter. Used on project rescans.
func (ix *Index) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.ids = make(map[string]ID)
	ix.next = 0
}
