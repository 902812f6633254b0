package texparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextThingControlSequence(t *testing.T) {
	tok, ok := NextThing(`hello \section{intro}`, 0)
	assert.True(t, ok)
	assert.Equal(t, KindCS, tok.Kind)
	assert.Equal(t, "section", tok.Detail)
	assert.Equal(t, 6, tok.Pos1)
}

func TestNextThingOtherCharControlSequence(t *testing.T) {
	tok, ok := NextThing(`\,x`, 0)
	assert.True(t, ok)
	assert.Equal(t, KindCS, tok.Kind)
	assert.Equal(t, ",", tok.Detail)
}

func TestNextThingMathShift(t *testing.T) {
	tok, ok := NextThing(`a $$ b`, 2)
	assert.True(t, ok)
	assert.Equal(t, KindMathShift, tok.Kind)
	assert.Equal(t, 4, tok.Pos2)
}

func TestNextThingParagraphBreak(t *testing.T) {
	tok, ok := NextThing("line one\n\nline two", 8)
	assert.True(t, ok)
	assert.Equal(t, KindPar, tok.Kind)
}

func TestNextThingSkipsComments(t *testing.T) {
	tok, ok := NextThing("%% a comment\n\\foo", 0)
	assert.True(t, ok)
	assert.Equal(t, KindCS, tok.Kind)
	assert.Equal(t, "foo", tok.Detail)
}

func TestNextThingEndOfText(t *testing.T) {
	_, ok := NextThing("plain text", 100)
	assert.False(t, ok)
}

func TestScanParagraphBreakNoNewlineInLongText(t *testing.T) {
	// A long text without any newline holds no paragraph break.
	text := "word " + string(make([]byte, 0))
	for i := 0; i < 2000; i++ {
		text += "x "
	}
	_, found := scanParagraphBreak(text, 0)
	assert.False(t, found)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank("a b", 1))
	assert.False(t, Blank("ab", 1))
	assert.False(t, Blank("a\nb", 1))
	assert.False(t, Blank("a", -1))
	assert.False(t, Blank("a", 5))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "intro", Trim("  intro\t\n"))
	assert.Equal(t, "", Trim("   "))
	assert.Equal(t, "a b", Trim("a b"))
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "keep \n", StripComments("keep % drop this\n"))
	assert.Equal(t, `\%literal`, StripComments(`\%literal`))
	assert.Equal(t, "no comment", StripComments("no comment"))
}
