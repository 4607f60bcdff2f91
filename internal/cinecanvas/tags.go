package cinecanvas

import (
	"regexp"
	"strconv"

	"cinecanvas/internal/ass"
)

// FontEdits holds the attribute edits an override-tag scan found in a line.
// A nil field means the line never mentioned that attribute; last
// occurrence wins when a tag appears more than once.
type FontEdits struct {
	FontName     *string
	FontSizePt   *float64
	PrimaryRGBA  *ass.RGBA
	OutlineRGBA  *ass.RGBA
	FadeInMs     *int
	FadeOutMs    *int
}

var (
	reFontName    = regexp.MustCompile(`\\fn([^\\}]+)`)
	reFontSize    = regexp.MustCompile(`\\fs(\d+)`)
	rePrimary1c   = regexp.MustCompile(`\\1?c&H([0-9A-Fa-f]{6})&`)
	reOutline3c   = regexp.MustCompile(`\\3c&H([0-9A-Fa-f]{6})&`)
	rePrimaryA    = regexp.MustCompile(`\\1?a&H([0-9A-Fa-f]{2})&`)
	reFadePair    = regexp.MustCompile(`\\fade?\((\d+),\s*(\d+)\)`)
	reFadeSingle  = regexp.MustCompile(`\\fad\((\d+)\)`)
)

// ExtractFontEdits independently scans the raw line (tag blocks included)
// for each recognized command. Every pattern is scanned globally; the last
// match wins, matching ASS's "last override in a line applies" convention.
func ExtractFontEdits(text string) FontEdits {
	var edits FontEdits

	if ms := reFontName.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		name := ms[len(ms)-1][1]
		edits.FontName = &name
	}
	if ms := reFontSize.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		if n, err := strconv.Atoi(ms[len(ms)-1][1]); err == nil && n > 0 {
			v := float64(n)
			edits.FontSizePt = &v
		}
	}
	if ms := rePrimary1c.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		c := bgrToRGBA(ms[len(ms)-1][1])
		edits.PrimaryRGBA = &c
	}
	if ms := reOutline3c.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		c := bgrToRGBA(ms[len(ms)-1][1])
		edits.OutlineRGBA = &c
	}
	if ms := rePrimaryA.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		hexByte, err := strconv.ParseUint(ms[len(ms)-1][1], 16, 8)
		if err == nil {
			if edits.PrimaryRGBA == nil {
				edits.PrimaryRGBA = &ass.RGBA{R: 255, G: 255, B: 255}
			}
			edits.PrimaryRGBA.A = uint8(hexByte)
		}
	}
	if ms := reFadePair.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		last := ms[len(ms)-1]
		in, errIn := strconv.Atoi(last[1])
		out, errOut := strconv.Atoi(last[2])
		if errIn == nil && errOut == nil {
			edits.FadeInMs = &in
			edits.FadeOutMs = &out
		}
	} else if ms := reFadeSingle.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		n, err := strconv.Atoi(ms[len(ms)-1][1])
		if err == nil {
			edits.FadeInMs = &n
			edits.FadeOutMs = &n
		}
	}

	return edits
}

// bgrToRGBA converts ASS's "&HBBGGRR&" channel ordering into RGBA (alpha
// left at 0, opaque, since color tags never carry alpha themselves).
func bgrToRGBA(bgr string) ass.RGBA {
	b, _ := strconv.ParseUint(bgr[0:2], 16, 8)
	g, _ := strconv.ParseUint(bgr[2:4], 16, 8)
	r, _ := strconv.ParseUint(bgr[4:6], 16, 8)
	return ass.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0}
}

// Segment is a maximal contiguous span of visible text sharing one
// bold/italic state.
type Segment struct {
	Text   string
	Bold   bool
	Italic bool
}

var reBoldItalicToggle = regexp.MustCompile(`\\(b([01])|i([01]))`)

// Segments walks text left-to-right, splitting on "{...}" override blocks
// and tracking bold/italic state across \b0/\b1 and \i0/\i1 toggles. Initial
// state is the base style's (bold, italic). Malformed blocks (no closing
// brace) are skipped one character at a time rather than consuming the rest
// of the line. Empty segments are dropped.
func Segments(text string, baseBold, baseItalic bool) []Segment {
	var segments []Segment
	bold, italic := baseBold, baseItalic
	var cur []rune

	runes := []rune(text)
	i := 0
	flush := func() {
		if len(cur) > 0 {
			segments = append(segments, Segment{Text: string(cur), Bold: bold, Italic: italic})
			cur = nil
		}
	}
	for i < len(runes) {
		if runes[i] == '{' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
			}
			if end == -1 {
				// Malformed block: no closing brace. Skip just this char.
				i++
				continue
			}
			flush()
			block := string(runes[i+1 : end])
			for _, m := range reBoldItalicToggle.FindAllStringSubmatch(block, -1) {
				switch {
				case m[2] != "":
					bold = m[2] == "1"
				case m[3] != "":
					italic = m[3] == "1"
				}
			}
			i = end + 1
			continue
		}
		cur = append(cur, runes[i])
		i++
	}
	flush()
	return segments
}
