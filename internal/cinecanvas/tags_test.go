package cinecanvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecanvas/internal/ass"
)

func TestExtractFontEdits_FontNameAndSize(t *testing.T) {
	edits := ExtractFontEdits(`{\fn Helvetica\fs50}Hi`)
	require.NotNil(t, edits.FontName)
	assert.Equal(t, " Helvetica", *edits.FontName)
	require.NotNil(t, edits.FontSizePt)
	assert.Equal(t, 50.0, *edits.FontSizePt)
}

func TestExtractFontEdits_PrimaryColorBGRToRGB(t *testing.T) {
	edits := ExtractFontEdits(`{\1c&H0000FF&}Hi`)
	require.NotNil(t, edits.PrimaryRGBA)
	assert.Equal(t, ass.RGBA{R: 255, G: 0, B: 0, A: 0}, *edits.PrimaryRGBA)
}

func TestExtractFontEdits_OutlineColor(t *testing.T) {
	edits := ExtractFontEdits(`{\3c&HFF0000&}Hi`)
	require.NotNil(t, edits.OutlineRGBA)
	assert.Equal(t, ass.RGBA{R: 0, G: 0, B: 255, A: 0}, *edits.OutlineRGBA)
}

func TestExtractFontEdits_FadePair(t *testing.T) {
	edits := ExtractFontEdits(`{\fad(100,250)}Hi`)
	require.NotNil(t, edits.FadeInMs)
	require.NotNil(t, edits.FadeOutMs)
	assert.Equal(t, 100, *edits.FadeInMs)
	assert.Equal(t, 250, *edits.FadeOutMs)
}

func TestExtractFontEdits_FadeSingleAppliesToBoth(t *testing.T) {
	edits := ExtractFontEdits(`{\fad(20)}Hi`)
	require.NotNil(t, edits.FadeInMs)
	require.NotNil(t, edits.FadeOutMs)
	assert.Equal(t, 20, *edits.FadeInMs)
	assert.Equal(t, 20, *edits.FadeOutMs)
}

func TestExtractFontEdits_LastOccurrenceWins(t *testing.T) {
	edits := ExtractFontEdits(`{\fs20}{\fs40}Hi`)
	require.NotNil(t, edits.FontSizePt)
	assert.Equal(t, 40.0, *edits.FontSizePt)
}

func TestExtractFontEdits_NoTagsYieldsNils(t *testing.T) {
	edits := ExtractFontEdits("plain text")
	assert.Nil(t, edits.FontName)
	assert.Nil(t, edits.FontSizePt)
	assert.Nil(t, edits.PrimaryRGBA)
	assert.Nil(t, edits.OutlineRGBA)
	assert.Nil(t, edits.FadeInMs)
}

func TestSegments_MixedStyling(t *testing.T) {
	segs := Segments(`a {\b1}b{\b0} c`, false, false)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Text: "a ", Bold: false, Italic: false}, segs[0])
	assert.Equal(t, Segment{Text: "b", Bold: true, Italic: false}, segs[1])
	assert.Equal(t, Segment{Text: " c", Bold: false, Italic: false}, segs[2])
}

func TestSegments_NoTagsIsOneSegment(t *testing.T) {
	segs := Segments("Hello", false, false)
	require.Len(t, segs, 1)
	assert.Equal(t, "Hello", segs[0].Text)
}

func TestSegments_InitialStateFromBaseStyle(t *testing.T) {
	segs := Segments("Hello", true, true)
	require.Len(t, segs, 1)
	assert.True(t, segs[0].Bold)
	assert.True(t, segs[0].Italic)
}

func TestSegments_EmptySegmentsDropped(t *testing.T) {
	segs := Segments(`{\b1}{\b0}Hi`, false, false)
	require.Len(t, segs, 1)
	assert.Equal(t, "Hi", segs[0].Text)
}

func TestSegments_MalformedBlockSkippedOneChar(t *testing.T) {
	segs := Segments(`a{b`, false, false)
	require.Len(t, segs, 1)
	assert.Equal(t, "ab", segs[0].Text)
}

func TestSegments_ConcatenationEqualsTagStrippedText(t *testing.T) {
	text := `{\b1}Hello{\b0} World`
	segs := Segments(text, false, false)
	var visible string
	for _, s := range segs {
		visible += s.Text
	}
	assert.Equal(t, "Hello World", visible)
}
