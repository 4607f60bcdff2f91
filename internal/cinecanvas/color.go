package cinecanvas

import (
	"fmt"
	"strconv"

	"cinecanvas/internal/ass"
)

// FormatColor renders an RGBA value as the uppercase "RRGGBBAA" hex string
// CineCanvas expects. CineCanvas alpha is the opposite convention from
// ASS-alpha (0xFF is opaque), so the byte is complemented here.
func FormatColor(c ass.RGBA) string {
	cineAlpha := 255 - c.A
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, cineAlpha)
}

// ParseColor parses a CineCanvas color string back into RGBA. Strings
// shorter than 6 hex digits yield opaque white. Non-hex characters also fall
// back to opaque white. An 8-digit string's trailing pair is the CineCanvas
// alpha, complemented back into ASS-alpha.
func ParseColor(s string) ass.RGBA {
	if len(s) < 6 {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	r, errR := strconv.ParseUint(s[0:2], 16, 8)
	g, errG := strconv.ParseUint(s[2:4], 16, 8)
	b, errB := strconv.ParseUint(s[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	assAlpha := uint8(0)
	if len(s) >= 8 {
		a, errA := strconv.ParseUint(s[6:8], 16, 8)
		if errA != nil {
			return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
		}
		assAlpha = 255 - uint8(a)
	}
	return ass.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: assAlpha}
}
