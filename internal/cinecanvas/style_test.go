package cinecanvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinecanvas/internal/ass"
)

func TestResolveEffectiveFont_NoOverridesUsesBase(t *testing.T) {
	base := &ass.Style{Font: "Arial", FontSize: 42, PrimaryRGBA: ass.RGBA{R: 255, G: 255, B: 255}, OutlineWidth: 2}
	eff := ResolveEffectiveFont(base, "Hello")
	assert.Equal(t, "Arial", eff.FontName)
	assert.Equal(t, 42.0, eff.FontSizePt)
	assert.Equal(t, base.PrimaryRGBA, eff.PrimaryRGBA)
}

func TestResolveEffectiveFont_OverridesWin(t *testing.T) {
	base := &ass.Style{Font: "Arial", FontSize: 42}
	eff := ResolveEffectiveFont(base, `{\fn Helvetica\fs50}Hi`)
	assert.Equal(t, " Helvetica", eff.FontName)
	assert.Equal(t, 50.0, eff.FontSizePt)
}

func TestResolveEffectiveFont_NilBaseUsesPackageDefaults(t *testing.T) {
	eff := ResolveEffectiveFont(nil, "Hi")
	assert.Equal(t, "Arial", eff.FontName)
	assert.Equal(t, 42.0, eff.FontSizePt)
}
