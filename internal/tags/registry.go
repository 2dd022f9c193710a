package tags

import (
	"sync"

	"hxlsp/internal/files"
)

// Registry is the project-wide tag table. Tag names are globally unique;
// inserting a duplicate never overwrites, the duplicate is surfaced to the
// caller as a conflict instead. Safe for concurrent use; Insert is an atomic
// check-and-set.
type Registry struct {
	mu   sync.RWMutex
	tags map[string]Tag
}

func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]Tag)}
}

// Insert adds t if its name is unused. Returns false when the name is
// already taken; the caller turns the rejected tag into a diagnostic at the
// duplicate's own span.
func (r *Registry) Insert(t Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[t.Name]; ok {
		return false
	}
	r.tags[t.Name] = t
	return true
}

// Lookup returns the tag registered under name.
func (r *Registry) Lookup(name string) (Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tags[name]
	return t, ok
}

// DeleteFile removes every tag owned by file. Called before re-inserting a
// file's tags on edit or save, so stale entries cannot shadow the fresh set.
func (r *Registry) DeleteFile(file files.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, t := range r.tags {
		if t.File == file {
			delete(r.tags, name)
		}
	}
}

// File returns every tag owned by file.
func (r *Registry) File(file files.ID) []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []Tag
	for _, t := range r.tags {
		if t.File == file {
			owned = append(owned, t)
		}
	}
	return owned
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}

// Reset drops all tags. Used on project rescans.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = make(map[string]Tag)
}
