package core

import (
	"github.com/shinyvision/texls/internal/dict"
	"github.com/tliron/commonlog"
)

// Manuscript is a per-file node in the include graph: parsed extracts
// (labels, bibitems, outline, input references), a scoped view of the
// active command/environment tables, and child Manuscript nodes for every
// \input-like reference (§3, §4.4).
type Manuscript struct {
	Filename string
	Src      string
	Parent   *Manuscript
	Depth    int
	Format   string

	Scope *Scope

	Labels       []Entry
	Bibitems     []Entry
	Outline      []*OutlineNode
	InputIndex   []Entry
	LabelIndex   []Entry
	SectionIndex []Entry

	Children map[string]*Manuscript

	cache  *FileCache
	loader *dict.Loader
}

// NewRootManuscript constructs the root of an include graph for filename,
// loading its format module and running the first global scan.
func NewRootManuscript(cache *FileCache, loader *dict.Loader, filename, format string) *Manuscript {
	return newManuscript(cache, loader, filename, format, nil)
}

func newManuscript(cache *FileCache, loader *dict.Loader, filename, format string, parent *Manuscript) *Manuscript {
	depth := 1
	var parentScope *Scope
	if parent != nil {
		depth = parent.Depth + 1
		parentScope = parent.Scope
	}

	src, _ := cache.Get(filename)

	m := &Manuscript{
		Filename: filename,
		Src:      src,
		Parent:   parent,
		Depth:    depth,
		Format:   format,
		Scope:    NewChildScope(parentScope),
		Children: make(map[string]*Manuscript),
		cache:    cache,
		loader:   loader,
	}

	if parent == nil {
		if mod, ok := loader.LoadModule(format); ok {
			m.Scope.MergeModule(mod)
		} else {
			commonlog.GetLoggerf("texls.core").Warningf("no dictionary module for format %q", format)
		}
	}

	m.GlobalScan()
	return m
}

// Refresh reconciles this Manuscript (and, transitively, its children)
// with the FileCache: if the cache's current text equals Src, it recurses
// into children and returns whether any of them rescanned; otherwise it
// replaces Src, reruns GlobalScan (which rebuilds Children from scratch),
// and returns true (§4.5).
func (m *Manuscript) Refresh() bool {
	current, ok := m.cache.Get(m.Filename)
	if !ok {
		return false
	}
	if current == m.Src {
		changed := false
		for _, child := range m.Children {
			if child.Refresh() {
				changed = true
			}
		}
		return changed
	}

	m.Src = current
	m.GlobalScan()
	return true
}

// RootFilename returns the Filename of the topmost ancestor in the include
// graph (itself, if m has no Parent).
func (m *Manuscript) RootFilename() string {
	cur := m
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur.Filename
}

// Find locates the node for filename within m's subtree (m included),
// returning nil if no such node has been scanned into the graph.
func (m *Manuscript) Find(filename string) *Manuscript {
	if m.Filename == filename {
		return m
	}
	for _, child := range m.Children {
		if found := child.Find(filename); found != nil {
			return found
		}
	}
	return nil
}

func logCycleDepth(filename string) {
	commonlog.GetLoggerf("texls.core").Warningf("include depth exceeded at %q: cycle guard engaged (CycleDepth)", filename)
}
