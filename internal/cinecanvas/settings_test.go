package cinecanvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_FromPath(t *testing.T) {
	s := DefaultSettings("/tmp/My Movie.xml", nil)
	assert.Equal(t, "My Movie", s.MovieTitle)
	assert.Equal(t, 24.0, s.FrameRateChoice)
	assert.Equal(t, 1, s.ReelNumber)
	assert.Equal(t, "en", s.LanguageCode)
}

func TestDefaultSettings_ClosestFrameRate(t *testing.T) {
	s := DefaultSettings("out.xml", floatPtr(29.98))
	assert.Equal(t, 29.97, s.FrameRateChoice)
}

func TestDefaultSettings_FrameRateOutsideToleranceFallsBackTo24(t *testing.T) {
	s := DefaultSettings("out.xml", floatPtr(27.0))
	assert.Equal(t, 24.0, s.FrameRateChoice)
}

func TestValidateFrameRateChoice(t *testing.T) {
	assert.Equal(t, 25.0, ValidateFrameRateChoice(25))
	assert.Equal(t, 24.0, ValidateFrameRateChoice(26.5))
}

func TestValidateMovieTitle(t *testing.T) {
	assert.Equal(t, "Untitled", ValidateMovieTitle("   "))
	assert.Equal(t, "Hello", ValidateMovieTitle("  Hello  "))
}

func TestValidateReelNumber(t *testing.T) {
	assert.Equal(t, 1, ValidateReelNumber(0))
	assert.Equal(t, 1, ValidateReelNumber(-5))
	assert.Equal(t, 3, ValidateReelNumber(3))
}

func TestValidateLanguageCode(t *testing.T) {
	assert.Equal(t, "en", ValidateLanguageCode("EN"))
	assert.Equal(t, "en", ValidateLanguageCode("xyzzy"))
	assert.Equal(t, "de", ValidateLanguageCode("de"))
	assert.Equal(t, "deu", ValidateLanguageCode("deu"))
}

func TestValidateFontSize(t *testing.T) {
	assert.Equal(t, 42, ValidateFontSize(0))
	assert.Equal(t, 42, ValidateFontSize(100))
	assert.Equal(t, 30, ValidateFontSize(30))
}

func TestValidateFadeDuration(t *testing.T) {
	assert.Equal(t, 20, ValidateFadeDuration(-1))
	assert.Equal(t, 0, ValidateFadeDuration(0))
}

func floatPtr(f float64) *float64 { return &f }
