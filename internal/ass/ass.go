// Package ass models the in-memory ASS (Advanced SubStation Alpha) subtitle
// document that the CineCanvas reader populates and the writer walks. It is
// not a ".ass" text parser: no file bytes are ever read or written here, only
// the graph an editor host would hold in memory.
package ass

// Time is a millisecond offset from 00:00:00.000. Always non-negative.
type Time int64

// Alignment mirrors the ASS numpad alignment codes (1-9, bottom-left to
// top-right). The reader always produces 2 (bottom-center).
type Alignment int

const (
	AlignBottomLeft Alignment = iota + 1
	AlignBottomCenter
	AlignBottomRight
	AlignMiddleLeft
	AlignMiddleCenter
	AlignMiddleRight
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
)

// RGBA carries 8-bit color channels plus an ASS-alpha byte, where 0 means
// opaque and 255 means fully transparent (the inverse of CineCanvas alpha).
type RGBA struct {
	R, G, B, A uint8
}

// Opaque reports whether the color has no transparency under ASS-alpha
// convention.
func (c RGBA) Opaque() bool { return c.A == 0 }

// Margins are the left/right/vertical pixel insets carried by a Style.
type Margins struct {
	Left, Right, Vertical int
}

// Style is a named collection of font and layout attributes shared by any
// number of dialogue events.
type Style struct {
	Name         string
	Font         string
	FontSize     int
	Bold         bool
	Italic       bool
	PrimaryRGBA  RGBA
	OutlineRGBA  RGBA
	OutlineWidth float64
	Alignment    Alignment
	Margins      Margins
}

// Event is a single dialogue (or comment) line. Text may contain ASS
// override tags and "\N" line separators. Ordering among events is by Start
// then by the position the event was appended in.
type Event struct {
	Start     Time
	End       Time
	Text      string
	StyleName string
	IsComment bool
}

// Document is the collaborator interface the CineCanvas reader/writer
// consume, per the host-supplied "ASS document container" boundary: a
// default-loadable, style- and event-mutable container. A host may supply
// its own richer implementation; Script below is this repo's default one.
type Document interface {
	LoadDefault()

	SetScriptInfo(key, value string)
	ScriptInfo(key string) (string, bool)

	Styles() []*Style
	AddStyle(s *Style)
	RemoveStyle(name string) bool
	StyleByName(name string) (*Style, bool)

	Events() []*Event
	AddEvent(e *Event)
	SetEvents(events []*Event)
}

// Script is the default in-memory Document implementation, shaped after the
// Subtitles/Item/Style container found in real Go ASS libraries (Items keyed
// by a flat slice, Styles addressable by name).
type Script struct {
	info   map[string]string
	styles []*Style
	events []*Event
}

// NewScript returns an empty, uninitialized document. Callers that need the
// reader's defaulting behavior should call LoadDefault.
func NewScript() *Script {
	return &Script{info: map[string]string{}}
}

// LoadDefault seeds the document the way a freshly created ASS editor
// document would: one "Default" style (Arial 42pt white, 2px black outline,
// bottom-center) and no events.
func (s *Script) LoadDefault() {
	s.info = map[string]string{
		"Title":    "",
		"ScriptType": "v4.00+",
	}
	s.styles = []*Style{
		{
			Name:         "Default",
			Font:         "Arial",
			FontSize:     42,
			Bold:         false,
			Italic:       false,
			PrimaryRGBA:  RGBA{255, 255, 255, 0},
			OutlineRGBA:  RGBA{0, 0, 0, 0},
			OutlineWidth: 2,
			Alignment:    AlignBottomCenter,
			Margins:      Margins{10, 10, 10},
		},
	}
	s.events = nil
}

func (s *Script) SetScriptInfo(key, value string) {
	if s.info == nil {
		s.info = map[string]string{}
	}
	s.info[key] = value
}

func (s *Script) ScriptInfo(key string) (string, bool) {
	v, ok := s.info[key]
	return v, ok
}

func (s *Script) Styles() []*Style { return s.styles }

func (s *Script) AddStyle(st *Style) { s.styles = append(s.styles, st) }

func (s *Script) RemoveStyle(name string) bool {
	for i, st := range s.styles {
		if st.Name == name {
			s.styles = append(s.styles[:i], s.styles[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Script) StyleByName(name string) (*Style, bool) {
	for _, st := range s.styles {
		if st.Name == name {
			return st, true
		}
	}
	return nil, false
}

func (s *Script) Events() []*Event { return s.events }

func (s *Script) AddEvent(e *Event) { s.events = append(s.events, e) }

func (s *Script) SetEvents(events []*Event) { s.events = events }
