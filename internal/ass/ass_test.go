package ass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_LoadDefault(t *testing.T) {
	s := NewScript()
	s.LoadDefault()

	require.Len(t, s.Styles(), 1)
	assert.Equal(t, "Default", s.Styles()[0].Name)
	assert.Empty(t, s.Events())
}

func TestScript_StyleLifecycle(t *testing.T) {
	s := NewScript()
	s.LoadDefault()

	s.AddStyle(&Style{Name: "CineCanvas", Font: "Arial"})
	got, ok := s.StyleByName("CineCanvas")
	require.True(t, ok)
	assert.Equal(t, "Arial", got.Font)

	assert.True(t, s.RemoveStyle("Default"))
	assert.False(t, s.RemoveStyle("Default"))
	assert.Len(t, s.Styles(), 1)
}

func TestScript_ScriptInfo(t *testing.T) {
	s := NewScript()
	s.SetScriptInfo("Title", "My Movie")
	v, ok := s.ScriptInfo("Title")
	require.True(t, ok)
	assert.Equal(t, "My Movie", v)

	_, ok = s.ScriptInfo("Missing")
	assert.False(t, ok)
}

func TestScript_Events(t *testing.T) {
	s := NewScript()
	s.AddEvent(&Event{Start: 0, End: 1000, Text: "Hi"})
	require.Len(t, s.Events(), 1)

	s.SetEvents(nil)
	assert.Empty(t, s.Events())
}
