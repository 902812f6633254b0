package core

import (
	"testing"

	"github.com/shinyvision/texls/internal/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec.md §8: signature_help at the byte inside \ref{|x}.
func TestLocalScanRefArgument(t *testing.T) {
	cache := NewFileCache()
	text := "\\section{Intro}\\label{x}\\ref{x}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	caret := len(`\section{Intro}\label{x}\ref{`) // just inside \ref{ x
	frame := m.LocalScan(caret)

	require.Equal(t, FrameArgument, frame.Kind)
	assert.Equal(t, 1, frame.ArgIndex)
	require.NotNil(t, frame.Parent)
	assert.Equal(t, FrameCommand, frame.Parent.Kind)
	assert.Equal(t, "ref", frame.Parent.Name)
}

func TestLocalScanEnvironmentArgument(t *testing.T) {
	cache := NewFileCache()
	text := "\\begin{tabular}{ccc}\nx & y & z\n\\end{tabular}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	caret := len("\\begin{tabular}{c")
	frame := m.LocalScan(caret)

	require.Equal(t, FrameArgument, frame.Kind)
	require.NotNil(t, frame.Parent)
	assert.Equal(t, FrameEnvironment, frame.Parent.Kind)
	assert.Equal(t, "tabular", frame.Parent.Name)
}

func TestLocalScanKeyValArgument(t *testing.T) {
	cache := NewFileCache()
	text := "\\includegraphics[width=5cm]{img.png}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	caretInValue := len("\\includegraphics[width=5")
	frame := m.LocalScan(caretInValue)
	require.Equal(t, FrameValueInKey, frame.Kind)
	assert.Equal(t, "width", frame.Name)

	caretInKey := len("\\includegraphics[wid")
	frame = m.LocalScan(caretInKey)
	require.Equal(t, FrameKeyInList, frame.Kind)
	assert.Equal(t, "width", frame.Name)
}

// §8 property 5: context stack invariant, checked at every offset of a
// moderately complex document.
func TestContextStackInvariantAllPositions(t *testing.T) {
	cache := NewFileCache()
	text := "\\section{Intro}\\label{x}\\ref{x}\\begin{itemize}\\end{itemize}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	for pos := 0; pos <= len(text); pos++ {
		frame := m.LocalScan(pos)
		for f := frame; f != nil; f = f.Parent {
			assert.True(t, f.Contains(pos), "pos=%d frame kind=%v [%d,%d]", pos, f.Kind, f.Pos, f.End())
			if f.Parent != nil {
				assert.LessOrEqual(t, f.Parent.Pos, f.Pos, "parent must contain child (pos side) at pos=%d", pos)
				assert.GreaterOrEqual(t, f.Parent.End(), f.End(), "parent must contain child (end side) at pos=%d", pos)
			}
		}
	}
}

func TestLocalScanUnknownCommandDegradesGracefully(t *testing.T) {
	cache := NewFileCache()
	text := "\\mysterycommand{abc}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	assert.NotPanics(t, func() {
		frame := m.LocalScan(3)
		assert.Equal(t, FrameCommand, frame.Kind)
		assert.Nil(t, frame.Data)
	})
}

func TestLocalScanBeginFrameDataType(t *testing.T) {
	cache := NewFileCache()
	text := "\\begin{itemize}\\end{itemize}\n"
	cache.Put("/t/a.tex", text)
	m := newTestManuscript(cache, "/t/a.tex")

	frame := m.LocalScan(len("\\begin{item"))
	require.Equal(t, FrameEnvironment, frame.Kind)
	env, ok := frame.Data.(*dict.Environment)
	require.True(t, ok)
	assert.Equal(t, "itemize", env.Name)
}
