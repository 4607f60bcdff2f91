package cinecanvas

import (
	"math"
	"path/filepath"
	"strings"
)

// AllowedFrameRates are the discrete DCP frame rates export settings may
// declare.
var AllowedFrameRates = []float64{23.976, 24, 25, 29.97, 30, 48, 50, 59.94, 60}

// commonLanguageCodes is a curated set of everyday ISO 639-1/639-2 codes.
// language_code validation accepts anything in this set case-insensitively,
// or any purely alphabetic 2-3 letter code, falling back to "en" otherwise.
var commonLanguageCodes = map[string]bool{
	"en": true, "eng": true,
	"es": true, "spa": true,
	"fr": true, "fra": true, "fre": true,
	"de": true, "deu": true, "ger": true,
	"it": true, "ita": true,
	"pt": true, "por": true,
	"ja": true, "jpn": true,
	"zh": true, "zho": true, "chi": true,
	"ko": true, "kor": true,
	"ru": true, "rus": true,
	"ar": true, "ara": true,
	"hi": true, "hin": true,
	"nl": true, "dut": true, "nld": true,
	"sv": true, "swe": true,
	"da": true, "dan": true,
	"no": true, "nor": true,
	"fi": true, "fin": true,
	"pl": true, "pol": true,
	"tr": true, "tur": true,
	"el": true, "ell": true, "gre": true,
	"he": true, "heb": true,
	"th": true, "tha": true,
	"vi": true, "vie": true,
	"id": true, "ind": true,
	"cs": true, "ces": true, "cze": true,
	"hu": true, "hun": true,
	"ro": true, "ron": true, "rum": true,
	"uk": true, "ukr": true,
}

// ExportSettings is the DCP-specific record a write (and export preview)
// consult. None of it binds to stored editor preferences in the core.
type ExportSettings struct {
	FrameRateChoice       float64
	MovieTitle            string
	ReelNumber            int
	LanguageCode          string
	IncludeFontReference  bool
	FontURI               string
}

// DefaultSettings derives an ExportSettings the way spec.md §6 describes:
// movie_title from the output path's filename stem, frame_rate_choice from
// the closest allowed rate to videoFPS (within 0.1fps tolerance), otherwise
// 24.
func DefaultSettings(outputPath string, videoFPS *float64) ExportSettings {
	title := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	title = ValidateMovieTitle(title)

	rate := 24.0
	if videoFPS != nil {
		rate = closestFrameRate(*videoFPS)
	}

	return ExportSettings{
		FrameRateChoice:      ValidateFrameRateChoice(rate),
		MovieTitle:           title,
		ReelNumber:           1,
		LanguageCode:         "en",
		IncludeFontReference: false,
		FontURI:              "",
	}
}

func closestFrameRate(fps float64) float64 {
	best := 24.0
	bestDiff := math.MaxFloat64
	for _, r := range AllowedFrameRates {
		diff := math.Abs(r - fps)
		if diff <= 0.1 && diff < bestDiff {
			best = r
			bestDiff = diff
		}
	}
	return best
}

// ValidateFrameRateChoice clamps to one of AllowedFrameRates, else 24.
func ValidateFrameRateChoice(rate float64) float64 {
	for _, r := range AllowedFrameRates {
		if rate == r {
			return r
		}
	}
	return 24
}

// ValidateMovieTitle trims surrounding whitespace; empty becomes "Untitled".
func ValidateMovieTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "Untitled"
	}
	return trimmed
}

// ValidateReelNumber enforces reel_number >= 1, else 1.
func ValidateReelNumber(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ValidateLanguageCode lowercases, then accepts the value if it's in the
// curated common-code set or purely alphabetic with length 2 or 3;
// otherwise "en".
func ValidateLanguageCode(code string) string {
	lower := strings.ToLower(strings.TrimSpace(code))
	if commonLanguageCodes[lower] {
		return lower
	}
	if (len(lower) == 2 || len(lower) == 3) && isAlpha(lower) {
		return lower
	}
	return "en"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ValidateFontSize clamps to [10, 72], else 42.
func ValidateFontSize(size int) int {
	if size < 10 || size > 72 {
		return 42
	}
	return size
}

// ValidateFadeDuration enforces >= 0, else 20.
func ValidateFadeDuration(ms int) int {
	if ms < 0 {
		return 20
	}
	return ms
}
