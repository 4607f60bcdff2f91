package cinecanvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecanvas/internal/ass"
)

func newDocWithDefault() *ass.Script {
	doc := ass.NewScript()
	doc.LoadDefault()
	return doc
}

func TestWrite_SingleLineRoundTrip(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 1000, End: 3000, Text: "Hello", StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	w := NewWriter(nil)
	_, err := w.Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `TimeIn="00:00:01:000"`)
	assert.Contains(t, content, `TimeOut="00:00:03:000"`)
	assert.Contains(t, content, `Color="FFFFFFFF"`)
	assert.Contains(t, content, `Effect="border"`)
	assert.Contains(t, content, `EffectColor="000000FF"`)
	assert.Contains(t, content, ">Hello<")

	doc2, err := Read(path)
	require.NoError(t, err)
	events := doc2.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ass.Time(1000), events[0].Start)
	assert.Equal(t, ass.Time(3000), events[0].End)
	assert.Equal(t, "Hello", events[0].Text)
	assert.Equal(t, "CineCanvas", events[0].StyleName)
}

func TestWrite_MultiLineVPositions(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: `Top\NBottom`, StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `VPosition="16.5"`)
	assert.Contains(t, string(content), `VPosition="10.0"`)

	doc2, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc2.Events(), 1)
	assert.Equal(t, `Top\NBottom`, doc2.Events()[0].Text)
}

func TestWrite_MixedStyling(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: `a {\b1}b{\b0} c`, StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<Font Weight="bold" Italic="no">b</Font>`)
}

func TestWrite_FadePreservation(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: `{\fad(100,250)}Hi`, StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `FadeUpTime="100"`)
	assert.Contains(t, string(content), `FadeDownTime="250"`)

	doc2, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc2.Events(), 1)
	assert.Contains(t, doc2.Events()[0].Text, `{\fad(100,250)}Hi`)
}

func TestWrite_CommentSkipping(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: "c", IsComment: true})
	doc.AddEvent(&ass.Event{Start: 1000, End: 2000, Text: "d1"})
	doc.AddEvent(&ass.Event{Start: 2000, End: 3000, Text: "d2"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	doc2, err := Read(path)
	require.NoError(t, err)
	events := doc2.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "d1", events[0].Text)
	assert.Equal(t, "d2", events[1].Text)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `SpotNumber="1"`)
	assert.Contains(t, string(content), `SpotNumber="2"`)
	assert.NotContains(t, string(content), ">c<")
}

func TestWrite_EmptyEventListProducesHeaderOnlyDocument(t *testing.T) {
	doc := newDocWithDefault()
	doc.SetEvents(nil)

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<DCSubtitle")
	assert.Contains(t, string(content), `Id="Font1"`)
}

func TestWrite_WhitespaceOnlyEventYieldsPlaceholder(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: `\N  \N`, StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `VPosition="10.0"`)
}

func TestWrite_FrameQuantization(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 1042, End: 2000, Text: "Hi", StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, NewFrameRateOracle(24), DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `TimeIn="00:00:01:041"`)
}

func TestNormalizeEvents_SameTextButFarApartStaysSeparate(t *testing.T) {
	events := []*ass.Event{
		{Start: 0, End: 1000, Text: "Hi"},
		{Start: 5000, End: 6000, Text: "Hi"},
	}

	merged := normalizeEvents(events)
	require.Len(t, merged, 2)
	assert.Equal(t, ass.Time(0), merged[0].Start)
	assert.Equal(t, ass.Time(1000), merged[0].End)
	assert.Equal(t, ass.Time(5000), merged[1].Start)
	assert.Equal(t, ass.Time(6000), merged[1].End)
}

func TestNormalizeEvents_OverlappingSameTextMerges(t *testing.T) {
	events := []*ass.Event{
		{Start: 0, End: 1000, Text: "Hi"},
		{Start: 500, End: 1500, Text: "Hi"},
	}

	merged := normalizeEvents(events)
	require.Len(t, merged, 1)
	assert.Equal(t, ass.Time(0), merged[0].Start)
	assert.Equal(t, ass.Time(1500), merged[0].End)
	assert.Equal(t, "Hi", merged[0].Text)
}

func TestWrite_SameTextFarApartStaysSeparateEvents(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: "Hi", StyleName: "Default"})
	doc.AddEvent(&ass.Event{Start: 5000, End: 6000, Text: "Hi", StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	doc2, err := Read(path)
	require.NoError(t, err)
	events := doc2.Events()
	require.Len(t, events, 2)
	assert.Equal(t, ass.Time(0), events[0].Start)
	assert.Equal(t, ass.Time(1000), events[0].End)
	assert.Equal(t, ass.Time(5000), events[1].Start)
	assert.Equal(t, ass.Time(6000), events[1].End)
}

func TestWrite_OutlineColorOverrideAppliesToEmittedFont(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: `{\3c&H0000FF&}Colored outline`, StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(nil).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `EffectColor="FF0000FF"`)
	// Only the container Font (the Default style) keeps the black outline.
	assert.Equal(t, 1, strings.Count(string(content), `EffectColor="000000FF"`))
}

func TestWrite_UUIDGeneratorUsedWhenSet(t *testing.T) {
	doc := newDocWithDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 1000, Text: "Hi"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := NewWriter(RandomUUIDGenerator{}).Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "urn:uuid:")
	assert.NotContains(t, string(content), placeholderSubtitleID)
}
