package cinecanvas

import "cinecanvas/internal/ass"

// EffectiveFont is the merge of a base style with whatever override-tag
// edits a line's text carries. Bold and italic are deliberately absent: they
// vary per styled segment and are resolved directly in the writer (§4.6),
// not here.
type EffectiveFont struct {
	FontName     string
	FontSizePt   float64
	PrimaryRGBA  ass.RGBA
	OutlineRGBA  ass.RGBA
	OutlineWidth float64
}

// ResolveEffectiveFont seeds an EffectiveFont from base (which may be nil,
// yielding the package defaults) and overlays any FontEdits extracted from
// line's full text.
func ResolveEffectiveFont(base *ass.Style, line string) EffectiveFont {
	eff := EffectiveFont{
		FontName:     "Arial",
		FontSizePt:   42,
		PrimaryRGBA:  ass.RGBA{R: 255, G: 255, B: 255, A: 0},
		OutlineRGBA:  ass.RGBA{A: 0},
		OutlineWidth: 2,
	}
	if base != nil {
		eff.FontName = base.Font
		eff.FontSizePt = float64(base.FontSize)
		eff.PrimaryRGBA = base.PrimaryRGBA
		eff.OutlineRGBA = base.OutlineRGBA
		eff.OutlineWidth = base.OutlineWidth
	}

	edits := ExtractFontEdits(line)
	if edits.FontName != nil {
		eff.FontName = *edits.FontName
	}
	if edits.FontSizePt != nil {
		eff.FontSizePt = *edits.FontSizePt
	}
	if edits.PrimaryRGBA != nil {
		eff.PrimaryRGBA = *edits.PrimaryRGBA
	}
	if edits.OutlineRGBA != nil {
		eff.OutlineRGBA = *edits.OutlineRGBA
	}
	return eff
}
