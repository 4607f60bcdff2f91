package cinecanvas

import (
	"regexp"
	"strings"

	"cinecanvas/internal/ass"
)

var (
	reAnimation = regexp.MustCompile(`\\(t\(|move\()`)
	reEffect    = regexp.MustCompile(`\\(blur|be|fscx|fscy)\d*`)
	reVector    = regexp.MustCompile(`\\p\d`)
)

// AnalyzeWarnings runs the pre-flight checks spec.md §4.4 describes over an
// event list and the settings about to be used for a write. Every condition
// that holds contributes one line; nothing here ever blocks the write.
func AnalyzeWarnings(events []*ass.Event, settings ExportSettings) string {
	var warnings []string

	count := 0
	for _, e := range events {
		if !e.IsComment {
			count++
		}
	}
	if count > 500 {
		warnings = append(warnings, "subtitle count exceeds 500; consider splitting across reels")
	}

	var sawAnimation, sawEffect, sawVector, sawLongLine bool
	for _, e := range events {
		if e.IsComment {
			continue
		}
		if reAnimation.MatchString(e.Text) {
			sawAnimation = true
		}
		if reEffect.MatchString(e.Text) {
			sawEffect = true
		}
		if reVector.MatchString(e.Text) {
			sawVector = true
		}
		for _, line := range strings.Split(e.Text, `\N`) {
			if len(line) > 80 {
				sawLongLine = true
			}
		}
	}
	if sawAnimation {
		warnings = append(warnings, "animation tags (\\t, \\move) have no DCP equivalent and will be dropped")
	}
	if sawEffect {
		warnings = append(warnings, "effect tags (\\blur, \\be, \\fscx, \\fscy) have no DCP equivalent and will be dropped")
	}
	if sawVector {
		warnings = append(warnings, "vector drawing commands (\\p) have no DCP equivalent and will be dropped")
	}
	if sawLongLine {
		warnings = append(warnings, "one or more lines exceed 80 characters; consider shorter lines for legibility")
	}

	if settings.IncludeFontReference && settings.FontURI == "" {
		warnings = append(warnings, "include_font_reference is set but font_uri is empty")
	}

	warnings = append(warnings, "DCP subtitles use the XYZ color space; colors are carried through unconverted")

	return strings.Join(warnings, "\n")
}
