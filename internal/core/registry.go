package core

import (
	"sync"

	"github.com/shinyvision/texls/internal/dict"
)

type registryKey struct {
	filename string
	format   string
}

type registryEntry struct {
	key        registryKey
	manuscript *Manuscript
	open       bool
}

// Registry memoizes root Manuscripts keyed by (filename, format), exactly
// the scheme called for in §9 ("a single process-wide map keyed by
// (root_filename, format)"). It additionally bounds its size the way the
// teacher's php.DocumentStore bounds parsed-document memory: open root
// documents are pinned and never evicted; closed ones are evicted
// least-recently-touched first once the bound is exceeded
// (SPEC_FULL.md supplemented feature 4).
type Registry struct {
	mu      sync.Mutex
	cache   *FileCache
	loader  *dict.Loader
	max     int
	entries []*registryEntry
	index   map[registryKey]*registryEntry
}

// NewRegistry constructs a Registry backed by cache and loader, bounded to
// max memoized roots (0 or negative means a sensible default).
func NewRegistry(cache *FileCache, loader *dict.Loader, max int) *Registry {
	if max <= 0 {
		max = 200
	}
	return &Registry{
		cache:  cache,
		loader: loader,
		max:    max,
		index:  make(map[registryKey]*registryEntry),
	}
}

// GetManuscript returns the memoized root Manuscript for (filename,
// format), building and caching it if necessary. Building implies a fresh
// GlobalScan over the current cache contents.
func (r *Registry) GetManuscript(filename, format string) *Manuscript {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{filename, format}
	if e, ok := r.index[key]; ok {
		r.touchLocked(e)
		return e.manuscript
	}

	m := NewRootManuscript(r.cache, r.loader, filename, format)
	e := &registryEntry{key: key, manuscript: m}
	r.entries = append(r.entries, e)
	r.index[key] = e
	r.evictLocked()
	return m
}

// MarkOpen pins (filename, format) so it is not evicted; the pin lasts
// until Invalidate drops the entry.
func (r *Registry) MarkOpen(filename, format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.index[registryKey{filename, format}]; ok {
		e.open = true
	}
}

// Invalidate drops every memoized root for filename regardless of format —
// used on document close (§3 lifecycle) — and unpins it.
func (r *Registry) Invalidate(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.index {
		if key.filename != filename {
			continue
		}
		delete(r.index, key)
		r.removeEntryLocked(e)
	}
}

func (r *Registry) touchLocked(e *registryEntry) {
	for i, other := range r.entries {
		if other == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.entries = append(r.entries, e)
}

func (r *Registry) removeEntryLocked(e *registryEntry) {
	for i, other := range r.entries {
		if other == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
}

func (r *Registry) evictLocked() {
	for len(r.entries) > r.max {
		evicted := false
		for i, e := range r.entries {
			if e.open {
				continue
			}
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			delete(r.index, e.key)
			evicted = true
			break
		}
		if !evicted {
			break
		}
	}
}
