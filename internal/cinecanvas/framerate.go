package cinecanvas

import (
	"math"

	"cinecanvas/internal/ass"
)

// FrameBias selects which edge of a frame boundary quantization rounds
// toward. The reader/writer only ever use BiasStart (floor); BiasEnd is kept
// for hosts that quantize TimeOut toward the end of a frame instead.
type FrameBias int

const (
	BiasStart FrameBias = iota
	BiasEnd
)

// FrameRateOracle quantizes millisecond times to frame boundaries of a given
// rate. An oracle with Loaded() == false or Rate() <= 0 performs no
// quantization.
type FrameRateOracle interface {
	Loaded() bool
	Rate() float64
	FrameOf(ms ass.Time, bias FrameBias) int64
	MsOf(frame int64, bias FrameBias) ass.Time
}

// StaticFrameRate is the default FrameRateOracle: a fixed rate known up
// front (typically the export settings' frame_rate_choice).
type StaticFrameRate struct {
	loaded bool
	rate   float64
}

// NewFrameRateOracle returns a loaded oracle at the given rate.
func NewFrameRateOracle(rate float64) *StaticFrameRate {
	return &StaticFrameRate{loaded: true, rate: rate}
}

// UnloadedFrameRate returns an oracle that performs no quantization.
func UnloadedFrameRate() *StaticFrameRate {
	return &StaticFrameRate{loaded: false}
}

func (o *StaticFrameRate) Loaded() bool  { return o.loaded }
func (o *StaticFrameRate) Rate() float64 { return o.rate }

func (o *StaticFrameRate) FrameOf(ms ass.Time, bias FrameBias) int64 {
	if o.rate <= 0 {
		return 0
	}
	f := float64(ms) * o.rate / 1000.0
	if bias == BiasEnd {
		return int64(math.Ceil(f))
	}
	// BiasStart: the last frame whose MsOf start time is <= ms, so that
	// FrameOf(MsOf(n)) == n and quantization is idempotent.
	frame := int64(math.Floor(f))
	if o.MsOf(frame+1, BiasStart) <= ms {
		frame++
	}
	return frame
}

func (o *StaticFrameRate) MsOf(frame int64, bias FrameBias) ass.Time {
	if o.rate <= 0 {
		return 0
	}
	ms := float64(frame) * 1000.0 / o.rate
	if bias == BiasEnd {
		return ass.Time(math.Ceil(ms))
	}
	return ass.Time(math.Floor(ms))
}

// quantize snaps ms through frame_of then ms_of when the oracle is loaded
// and has a usable rate, per spec §4.1's "ms = ms_of(frame_of(ms, START))".
func quantize(ms ass.Time, oracle FrameRateOracle) ass.Time {
	if oracle == nil || !oracle.Loaded() || oracle.Rate() <= 0 {
		return ms
	}
	return oracle.MsOf(oracle.FrameOf(ms, BiasStart), BiasStart)
}
