package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCachePutGet(t *testing.T) {
	c := NewFileCache()
	c.Put("/t/a.tex", "hello")
	text, ok := c.Get("/t/a.tex")
	require.True(t, ok)
	assert.Equal(t, "hello", text)
}

func TestFileCacheDiskFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tex")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o644))

	c := NewFileCache()
	text, ok := c.Get(path)
	require.True(t, ok)
	assert.Equal(t, "from disk", text)
}

func TestFileCacheUnknownFile(t *testing.T) {
	c := NewFileCache()
	_, ok := c.Get("/does/not/exist.tex")
	assert.False(t, ok)

	_, err := c.GetPosition("/does/not/exist.tex", 1, 1)
	assert.ErrorIs(t, err, ErrUnknownFile)
}

func TestFileCacheForget(t *testing.T) {
	c := NewFileCache()
	c.Put("/t/a.tex", "hi")
	c.PutProperty("/t/a.tex", "format", "latex")
	c.Forget("/t/a.tex")
	_, ok := c.Get("/t/a.tex")
	assert.False(t, ok)
	_, ok = c.GetProperty("/t/a.tex", "format")
	assert.False(t, ok)
}

func TestFileCachePropertiesSurvivePut(t *testing.T) {
	c := NewFileCache()
	c.Put("/t/a.tex", "v1")
	c.PutProperty("/t/a.tex", "format", "latex")
	c.Put("/t/a.tex", "v2")
	v, ok := c.GetProperty("/t/a.tex", "format")
	require.True(t, ok)
	assert.Equal(t, "latex", v)
}

func TestPositionRoundTrip(t *testing.T) {
	c := NewFileCache()
	text := "line one\nline two\nlïne three\n"
	c.Put("/t/a.tex", text)

	for offset := 0; offset <= len(text); {
		line, col, err := c.GetLineCol("/t/a.tex", offset)
		require.NoError(t, err)
		back, err := c.GetPosition("/t/a.tex", line, col)
		require.NoError(t, err)
		assert.Equal(t, offset, back, "offset=%d line=%d col=%d", offset, line, col)

		if offset == len(text) {
			break
		}
		_, size := decodeRuneSize(text[offset])
		offset += size
	}
}

func TestGetPositionClampsColumn(t *testing.T) {
	c := NewFileCache()
	c.Put("/t/a.tex", "abc\ndef\n")
	off, err := c.GetPosition("/t/a.tex", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, off) // end of "abc", before the newline
}

func TestApplyChangesIncremental(t *testing.T) {
	c := NewFileCache()
	c.Put("/t/a.tex", "\\section{Intro}\\label{x}\\ref{x}\n")

	err := c.ApplyChanges("/t/a.tex", []Change{
		{StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 15, RangeLength: 5, Text: "Overview"},
	})
	require.NoError(t, err)
	text, _ := c.Get("/t/a.tex")
	assert.Equal(t, "\\section{Overview}\\label{x}\\ref{x}\n", text)
}

func TestApplyChangesRangeMismatchLeavesSrcUnchanged(t *testing.T) {
	c := NewFileCache()
	original := "\\section{Intro}\n"
	c.Put("/t/a.tex", original)

	err := c.ApplyChanges("/t/a.tex", []Change{
		{StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 15, RangeLength: 4, Text: "Overview"},
	})
	assert.ErrorIs(t, err, ErrRangeMismatch)
	text, _ := c.Get("/t/a.tex")
	assert.Equal(t, original, text)
}
