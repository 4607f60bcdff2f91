package cinecanvas

import (
	"fmt"
	"regexp"
	"strconv"

	"cinecanvas/internal/ass"
)

var (
	reTimeColon = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2}):(\d{3})$`)
	reTimeDot   = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{3})$`)
)

// FormatTime renders a millisecond time as CineCanvas's "HH:MM:SS:mmm",
// quantizing through the frame-rate oracle first when one is loaded. Hours
// are unbounded: no 24-hour wraparound.
func FormatTime(ms ass.Time, oracle FrameRateOracle) string {
	ms = quantize(ms, oracle)
	if ms < 0 {
		ms = 0
	}
	totalMs := int64(ms)
	hours := totalMs / 3600000
	rem := totalMs % 3600000
	minutes := rem / 60000
	rem = rem % 60000
	seconds := rem / 1000
	millis := rem % 1000
	return fmt.Sprintf("%02d:%02d:%02d:%03d", hours, minutes, seconds, millis)
}

// ParseTime parses CineCanvas's "HH:MM:SS:mmm", falling back to
// "HH:MM:SS.mmm". A string matching neither yields 0.
func ParseTime(s string) ass.Time {
	if m := reTimeColon.FindStringSubmatch(s); m != nil {
		return assembleTime(m)
	}
	if m := reTimeDot.FindStringSubmatch(s); m != nil {
		return assembleTime(m)
	}
	return 0
}

func assembleTime(m []string) ass.Time {
	h, _ := strconv.ParseInt(m[1], 10, 64)
	min, _ := strconv.ParseInt(m[2], 10, 64)
	sec, _ := strconv.ParseInt(m[3], 10, 64)
	milli, _ := strconv.ParseInt(m[4], 10, 64)
	total := h*3600000 + min*60000 + sec*1000 + milli
	return ass.Time(total)
}
