package core

import (
	"testing"

	"github.com/shinyvision/texls/internal/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec.md §8.
func TestScenarioS1(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\section{Intro}\\label{x}\\ref{x}\n")
	m := newTestManuscript(cache, "/t/a.tex")

	require.Len(t, m.Outline, 1)
	assert.Equal(t, 1, m.Outline[0].Level)
	assert.Equal(t, "Intro", m.Outline[0].Title)

	names := make([]string, len(m.Labels))
	for i, e := range m.Labels {
		names[i] = e.Name
	}
	assert.Contains(t, names, "x")
}

// S3 from spec.md §8.
func TestScenarioS3InputAndLabel(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/root.tex", "\\input{child}\n\\ref{y}\n")
	cache.Put("/t/child.tex", "\\label{y}\n")

	m := newTestManuscript(cache, "/t/root.tex")
	require.Len(t, m.Children, 1)

	child, ok := m.Children["/t/child.tex"]
	require.True(t, ok)
	assert.Equal(t, "y", child.Labels[0].Name)
	assert.Equal(t, m, child.Parent)
	assert.Equal(t, 2, child.Depth)
}

// S5 from spec.md §8: malformed source never raises, indices stay empty.
func TestScenarioS5MalformedSource(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\begin{itemize}\\item a")

	assert.NotPanics(t, func() {
		m := newTestManuscript(cache, "/t/a.tex")
		assert.Empty(t, m.Outline)
		assert.Empty(t, m.Labels)
	})
}

// §8 property 3: scan completeness for multiple labels/headings.
func TestScanCompletenessOrdering(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\section{One}\\label{a}\\section{Two}\\label{b}\\label{c}\n")
	m := newTestManuscript(cache, "/t/a.tex")

	require.Len(t, m.Outline, 2)
	assert.Equal(t, "One", m.Outline[0].Title)
	assert.Equal(t, "Two", m.Outline[1].Title)

	require.Len(t, m.Labels, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{m.Labels[0].Name, m.Labels[1].Name, m.Labels[2].Name})
	assert.Less(t, m.Labels[0].Pos, m.Labels[1].Pos)
	assert.Less(t, m.Labels[1].Pos, m.Labels[2].Pos)
}

// §8 property 3: outline nesting invariant.
func TestOutlineNestingInvariant(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\section{A}\\subsection{A.1}\\section{B}\n")
	m := newTestManuscript(cache, "/t/a.tex")

	require.Len(t, m.Outline, 2)
	require.Len(t, m.Outline[0].Children, 1)
	assert.Equal(t, "A.1", m.Outline[0].Children[0].Title)
	assert.Greater(t, m.Outline[0].Children[0].Level, m.Outline[0].Level)
	assert.Empty(t, m.Outline[1].Children)
}

// §8 property 4: scope inheritance.
func TestScopeInheritance(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/root.tex", "\\input{child}\n")
	cache.Put("/t/child.tex", "\\label{y}\n")

	parent := newTestManuscript(cache, "/t/root.tex")
	child := parent.Children["/t/child.tex"]

	// Inherited from parent.
	_, ok := child.Scope.Command("section")
	assert.True(t, ok)

	// Local shadow doesn't mutate the parent.
	child.Scope.DefineCommand("label", &dict.Command{Name: "label", Action: dict.ActionCite})
	got, _ := child.Scope.Command("label")
	assert.Equal(t, dict.ActionCite, got.Action)

	parentLabel, _ := parent.Scope.Command("label")
	assert.Equal(t, dict.ActionLabel, parentLabel.Action, "child shadow must not mutate parent")
}

// §8 property 6: cycle safety via depth cap.
func TestCycleSafety(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\input{b}\n")
	cache.Put("/t/b.tex", "\\input{a}\n")

	m := newTestManuscript(cache, "/t/a.tex")

	// Walk down the chain; the depth cap stops it at the node of Depth 15,
	// 14 steps below the root.
	depth := 0
	cur := m
	for {
		var next *Manuscript
		for _, c := range cur.Children {
			next = c
			break
		}
		if next == nil {
			break
		}
		cur = next
		depth++
		require.Less(t, depth, 20)
	}
	assert.GreaterOrEqual(t, depth, 1, "should have descended at least once before the cap")
}

// §8 property 7: refresh idempotence.
func TestRefreshIdempotence(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\section{Intro}\n")
	m := newTestManuscript(cache, "/t/a.tex")

	assert.False(t, m.Refresh(), "no cache change since construction")
	assert.False(t, m.Refresh())

	cache.Put("/t/a.tex", "\\section{Changed}\n")
	assert.True(t, m.Refresh())
	assert.Equal(t, "Changed", m.Outline[0].Title)
	assert.False(t, m.Refresh())
}

// S4 from spec.md §8: incremental edit then refresh updates the outline.
func TestScenarioS4IncrementalEditThenRefresh(t *testing.T) {
	cache := NewFileCache()
	cache.Put("/t/a.tex", "\\section{Intro}\\label{x}\\ref{x}\n")
	m := newTestManuscript(cache, "/t/a.tex")
	require.Equal(t, "Intro", m.Outline[0].Title)

	err := cache.ApplyChanges("/t/a.tex", []Change{
		{StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 15, RangeLength: 5, Text: "Overview"},
	})
	require.NoError(t, err)

	text, _ := cache.Get("/t/a.tex")
	assert.Contains(t, text, "Overview")
	assert.Equal(t, "Intro", m.Outline[0].Title, "stale until refresh is called")

	assert.True(t, m.Refresh())
	assert.Equal(t, "Overview", m.Outline[0].Title)
}
