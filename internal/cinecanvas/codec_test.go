package cinecanvas

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecanvas/internal/ass"
)

func TestCodec_NameAndExtensions(t *testing.T) {
	c := New()
	assert.Equal(t, "CineCanvas", c.Name())
	assert.Equal(t, []string{"xml"}, c.Extensions())
}

func TestCodec_CanRead_WrongExtensionDeclines(t *testing.T) {
	c := New()
	path := writeFixture(t, "doc.txt", minimalDoc)
	assert.False(t, c.CanRead(path))
}

func TestCodec_CanRead_WrongRootDeclines(t *testing.T) {
	c := New()
	path := writeFixture(t, "doc.xml", `<NotDCSubtitle/>`)
	assert.False(t, c.CanRead(path))
}

func TestCodec_CanRead_MatchingRootAccepts(t *testing.T) {
	c := New()
	path := writeFixture(t, "doc.xml", minimalDoc)
	assert.True(t, c.CanRead(path))
}

func TestCodec_CanWrite_AlwaysTrue(t *testing.T) {
	c := New()
	assert.True(t, c.CanWrite(ass.NewScript()))
}

func TestCodec_WriteThenRead(t *testing.T) {
	c := New()
	doc := ass.NewScript()
	doc.LoadDefault()
	doc.AddEvent(&ass.Event{Start: 0, End: 2000, Text: "Hello", StyleName: "Default"})

	path := filepath.Join(t.TempDir(), "out.xml")
	_, err := c.Write(doc, path, nil, DefaultSettings(path, nil))
	require.NoError(t, err)

	roundTripped, err := c.Read(path)
	require.NoError(t, err)
	require.Len(t, roundTripped.Events(), 1)
	assert.Equal(t, "Hello", roundTripped.Events()[0].Text)
}

func TestCodec_Read_NonXMLExtensionRejected(t *testing.T) {
	c := New()
	path := writeFixture(t, "doc.txt", minimalDoc)
	_, err := c.Read(path)
	require.Error(t, err)
	var rejected *CanReadRejectedError
	require.ErrorAs(t, err, &rejected)
}

func TestCodec_Read_MissingFileIsParseError(t *testing.T) {
	c := New()
	_, err := c.Read(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestCodec_CanRead_FileOpenFailureDeclines(t *testing.T) {
	c := New()
	assert.False(t, c.CanRead(filepath.Join(t.TempDir(), "missing.xml")))
}
