package cinecanvas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalDoc = `<?xml version="1.0" encoding="UTF-8"?>
<DCSubtitle Version="1.0">
  <MovieTitle>Test Movie</MovieTitle>
  <Language>en</Language>
  <Font Id="Font1" Script="Arial" Size="42" Weight="normal" Italic="no" Color="FFFFFFFF" Effect="border" EffectColor="000000FF">
    <Subtitle SpotNumber="1">
      <Text VAlign="bottom" HAlign="center" VPosition="10.0" HPosition="0.0" Direction="horizontal">Hello</Text>
    </Subtitle>
  </Font>
</DCSubtitle>`

func TestRead_MissingTimesUseDefaults(t *testing.T) {
	path := writeFixture(t, "missing-times.xml", minimalDoc)
	doc, err := Read(path)
	require.NoError(t, err)

	events := doc.Events()
	require.Len(t, events, 1)
	assert.EqualValues(t, 0, events[0].Start)
	assert.EqualValues(t, 5000, events[0].End)
}

func TestRead_HeaderMetadata(t *testing.T) {
	path := writeFixture(t, "header.xml", minimalDoc)
	doc, err := Read(path)
	require.NoError(t, err)

	title, ok := doc.ScriptInfo("Title")
	require.True(t, ok)
	assert.Equal(t, "Test Movie", title)

	styles := doc.Styles()
	require.Len(t, styles, 1)
	assert.Equal(t, "CineCanvas", styles[0].Name)
	_, hasDefault := doc.StyleByName("Default")
	assert.False(t, hasDefault)
}

func TestRead_MalformedTimeFallsBackToZero(t *testing.T) {
	doc := `<DCSubtitle Version="1.0">
  <Font Id="Font1">
    <Subtitle SpotNumber="1" TimeIn="garbage" TimeOut="also garbage">
      <Text VPosition="10.0">Hi</Text>
    </Subtitle>
  </Font>
</DCSubtitle>`
	path := writeFixture(t, "malformed-time.xml", doc)
	d, err := Read(path)
	require.NoError(t, err)
	require.Len(t, d.Events(), 1)
	assert.EqualValues(t, 0, d.Events()[0].Start)
	assert.EqualValues(t, 0, d.Events()[0].End)
}

func TestRead_NoEventsInsertsOnePlaceholder(t *testing.T) {
	doc := `<DCSubtitle Version="1.0"><Font Id="Font1"></Font></DCSubtitle>`
	path := writeFixture(t, "no-events.xml", doc)
	d, err := Read(path)
	require.NoError(t, err)
	require.Len(t, d.Events(), 1)
}

func TestRead_RootMismatchIsParseError(t *testing.T) {
	path := writeFixture(t, "wrong-root.xml", `<NotASubtitle/>`)
	_, err := Read(path)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestRead_DescendingVPositionSort(t *testing.T) {
	doc := `<DCSubtitle Version="1.0">
  <Font Id="Font1">
    <Subtitle SpotNumber="1">
      <Text VPosition="10.0">Bottom</Text>
      <Text VPosition="16.5">Top</Text>
    </Subtitle>
  </Font>
</DCSubtitle>`
	path := writeFixture(t, "multi-vpos.xml", doc)
	d, err := Read(path)
	require.NoError(t, err)
	require.Len(t, d.Events(), 1)
	assert.Equal(t, `Top\NBottom`, d.Events()[0].Text)
}

func TestRead_FadeTimesReconstructFadTag(t *testing.T) {
	doc := `<DCSubtitle Version="1.0">
  <Font Id="Font1">
    <Subtitle SpotNumber="1" FadeUpTime="100" FadeDownTime="250">
      <Text VPosition="10.0">Hi</Text>
    </Subtitle>
  </Font>
</DCSubtitle>`
	path := writeFixture(t, "fade.xml", doc)
	d, err := Read(path)
	require.NoError(t, err)
	require.Len(t, d.Events(), 1)
	assert.Equal(t, `{\fad(100,250)}Hi`, d.Events()[0].Text)
}
