package cinecanvas

import (
	"encoding/xml"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cinecanvas/internal/ass"
)

// Writer emits CineCanvas XML from an ass.Document. UUIDGen is optional;
// when nil, SubtitleID falls back to the spec's stable placeholder.
type Writer struct {
	UUIDGen UUIDGenerator
}

// NewWriter returns a Writer using gen for SubtitleID, or the placeholder
// when gen is nil.
func NewWriter(gen UUIDGenerator) *Writer {
	return &Writer{UUIDGen: gen}
}

// Write implements spec.md §4.6. It returns the pre-flight warning string
// from AnalyzeWarnings alongside a successful write, so callers don't have
// to run the analyzer a second time.
func (w *Writer) Write(doc ass.Document, path string, oracle FrameRateOracle, settings ExportSettings) (string, error) {
	events := normalizeEvents(doc.Events())

	styleByName := map[string]*ass.Style{}
	for _, s := range doc.Styles() {
		styleByName[s.Name] = s
	}
	defaultStyle := chooseDefaultStyle(doc.Styles(), styleByName)

	f, err := os.Create(path)
	if err != nil {
		return "", newWriteError(path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return "", newWriteError(path, err)
	}

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")

	subtitleID := placeholderSubtitleID
	if w.UUIDGen != nil {
		subtitleID = w.UUIDGen.NewSubtitleID()
	}

	if err := writeDocument(enc, events, styleByName, defaultStyle, settings, oracle, subtitleID); err != nil {
		return "", newWriteError(path, err)
	}
	if err := enc.Flush(); err != nil {
		return "", newWriteError(path, err)
	}

	return AnalyzeWarnings(toEventPtrs(events), settings), nil
}

func toEventPtrs(events []ass.Event) []*ass.Event {
	out := make([]*ass.Event, len(events))
	for i := range events {
		out[i] = &events[i]
	}
	return out
}

// normalizeEvents implements spec.md §4.6 step 1: work on a copy, sort by
// start, drop comments, and recombine overlapping events into one; events
// with identical text are also merged when one starts exactly where the
// previous ends. The source document is never mutated.
func normalizeEvents(source []*ass.Event) []ass.Event {
	var filtered []ass.Event
	for _, e := range source {
		if e == nil || e.IsComment {
			continue
		}
		filtered = append(filtered, *e)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Start < filtered[j].Start })
	if len(filtered) == 0 {
		return filtered
	}

	merged := []ass.Event{filtered[0]}
	for _, next := range filtered[1:] {
		cur := &merged[len(merged)-1]
		overlap := next.Start < cur.End
		sameText := next.Text == cur.Text
		switch {
		case overlap || (sameText && next.Start == cur.End):
			if next.End > cur.End {
				cur.End = next.End
			}
			if !sameText && !strings.Contains(cur.Text, next.Text) {
				cur.Text = cur.Text + `\N` + next.Text
			}
		default:
			merged = append(merged, next)
		}
	}
	return merged
}

func chooseDefaultStyle(styles []*ass.Style, byName map[string]*ass.Style) *ass.Style {
	if s, ok := byName["Default"]; ok {
		return s
	}
	if len(styles) > 0 {
		return styles[0]
	}
	return nil
}

func startElem(enc *xml.Encoder, name string, attrs ...xml.Attr) error {
	return enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func endElem(enc *xml.Encoder, name string) error {
	return enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func charData(enc *xml.Encoder, s string) error {
	return enc.EncodeToken(xml.CharData([]byte(s)))
}

func xattr(name, val string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: val}
}

func writeLeaf(enc *xml.Encoder, name, value string) error {
	if err := startElem(enc, name); err != nil {
		return err
	}
	if err := charData(enc, value); err != nil {
		return err
	}
	return endElem(enc, name)
}

func writeDocument(enc *xml.Encoder, events []ass.Event, styleByName map[string]*ass.Style, defaultStyle *ass.Style, settings ExportSettings, oracle FrameRateOracle, subtitleID string) error {
	if err := startElem(enc, "DCSubtitle", xattr("Version", "1.0")); err != nil {
		return err
	}

	if err := writeLeaf(enc, "SubtitleID", subtitleID); err != nil {
		return err
	}
	if err := writeLeaf(enc, "MovieTitle", settings.MovieTitle); err != nil {
		return err
	}
	if err := writeLeaf(enc, "ReelNumber", strconv.Itoa(settings.ReelNumber)); err != nil {
		return err
	}
	if err := writeLeaf(enc, "Language", settings.LanguageCode); err != nil {
		return err
	}

	fontURI := ""
	if settings.IncludeFontReference && settings.FontURI != "" {
		fontURI = filepath.Base(settings.FontURI)
	}
	if err := startElem(enc, "LoadFont", xattr("Id", "Font1"), xattr("URI", fontURI)); err != nil {
		return err
	}
	if err := endElem(enc, "LoadFont"); err != nil {
		return err
	}

	if err := writeContainerFont(enc, defaultStyle); err != nil {
		return err
	}

	for i, e := range events {
		if err := writeSubtitle(enc, i+1, e, styleByName, defaultStyle, oracle); err != nil {
			return err
		}
	}

	return endElem(enc, "DCSubtitle")
}

func containerFontAttrs(style *ass.Style) (font string, size int, weight, italic, color string, outlineWidth float64, outlineRGBA ass.RGBA) {
	if style == nil {
		return "Arial", 42, "normal", "no", FormatColor(ass.RGBA{R: 255, G: 255, B: 255, A: 0}), 2, ass.RGBA{A: 0}
	}
	weight = "normal"
	if style.Bold {
		weight = "bold"
	}
	italic = "no"
	if style.Italic {
		italic = "yes"
	}
	return style.Font, style.FontSize, weight, italic, FormatColor(style.PrimaryRGBA), style.OutlineWidth, style.OutlineRGBA
}

func fontAttrs(eff EffectiveFont, weight, italic string, outlineWidth float64, outlineRGBA ass.RGBA) []xml.Attr {
	effect := "none"
	effectColor := "000000FF"
	if outlineWidth > 0 {
		effect = "border"
		effectColor = FormatColor(outlineRGBA)
	}
	return []xml.Attr{
		xattr("Script", eff.FontName),
		xattr("Size", strconv.Itoa(int(math.Round(eff.FontSizePt)))),
		xattr("Weight", weight),
		xattr("Italic", italic),
		xattr("Color", FormatColor(eff.PrimaryRGBA)),
		xattr("Effect", effect),
		xattr("EffectColor", effectColor),
	}
}

func writeContainerFont(enc *xml.Encoder, style *ass.Style) error {
	font, size, weight, italic, color, outlineWidth, outlineRGBA := containerFontAttrs(style)
	eff := EffectiveFont{FontName: font, FontSizePt: float64(size), PrimaryRGBA: ParseColor(color), OutlineWidth: outlineWidth, OutlineRGBA: outlineRGBA}
	attrs := append([]xml.Attr{xattr("Id", "Font1")}, fontAttrs(eff, weight, italic, outlineWidth, outlineRGBA)...)
	if err := startElem(enc, "Font", attrs...); err != nil {
		return err
	}
	return endElem(enc, "Font")
}

type preparedLine struct {
	segments []Segment
	visible  string
}

func visibleTextOf(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func writeSubtitle(enc *xml.Encoder, spotNumber int, e ass.Event, styleByName map[string]*ass.Style, defaultStyle *ass.Style, oracle FrameRateOracle) error {
	style := defaultStyle
	if s, ok := styleByName[e.StyleName]; ok {
		style = s
	}
	baseBold, baseItalic := false, false
	if style != nil {
		baseBold, baseItalic = style.Bold, style.Italic
	}

	eff := ResolveEffectiveFont(style, e.Text)
	edits := ExtractFontEdits(e.Text)
	fadeIn, fadeOut := 0, 0
	if edits.FadeInMs != nil {
		fadeIn = *edits.FadeInMs
	}
	if edits.FadeOutMs != nil {
		fadeOut = *edits.FadeOutMs
	}

	end := e.End
	if end < e.Start {
		end = e.Start
	}

	attrs := []xml.Attr{
		xattr("SpotNumber", strconv.Itoa(spotNumber)),
		xattr("TimeIn", FormatTime(e.Start, oracle)),
		xattr("TimeOut", FormatTime(end, oracle)),
		xattr("FadeUpTime", strconv.Itoa(fadeIn)),
		xattr("FadeDownTime", strconv.Itoa(fadeOut)),
	}
	if err := startElem(enc, "Subtitle", attrs...); err != nil {
		return err
	}

	rawLines := strings.Split(e.Text, `\N`)
	if len(rawLines) == 1 && strings.Contains(e.Text, "\n") {
		rawLines = strings.Split(e.Text, "\n")
	}

	var prepared []preparedLine
	for _, raw := range rawLines {
		segs := Segments(raw, baseBold, baseItalic)
		visible := visibleTextOf(segs)
		if strings.TrimSpace(visible) == "" {
			continue
		}
		prepared = append(prepared, preparedLine{segments: segs, visible: visible})
	}

	if len(prepared) == 0 {
		if err := writeLine(enc, eff, "normal", "no", eff.OutlineWidth, eff.OutlineRGBA, 10.0, ""); err != nil {
			return err
		}
	} else {
		nonEmpty := len(prepared)
		for i, line := range prepared {
			vpos := 10.0 + float64(nonEmpty-1-i)*6.5
			if err := writeLineSegments(enc, eff, eff.OutlineWidth, eff.OutlineRGBA, vpos, line.segments, baseBold, baseItalic); err != nil {
				return err
			}
		}
	}

	return endElem(enc, "Subtitle")
}

// writeLine emits a uniform Font/Text pair with literal text.
func writeLine(enc *xml.Encoder, eff EffectiveFont, weight, italic string, outlineWidth float64, outlineRGBA ass.RGBA, vpos float64, text string) error {
	if err := startElem(enc, "Font", fontAttrs(eff, weight, italic, outlineWidth, outlineRGBA)...); err != nil {
		return err
	}
	if err := startElem(enc, "Text", textAttrs(vpos)...); err != nil {
		return err
	}
	if text != "" {
		if err := charData(enc, text); err != nil {
			return err
		}
	}
	if err := endElem(enc, "Text"); err != nil {
		return err
	}
	return endElem(enc, "Font")
}

func textAttrs(vpos float64) []xml.Attr {
	return []xml.Attr{
		xattr("VAlign", "bottom"),
		xattr("HAlign", "center"),
		xattr("VPosition", strconv.FormatFloat(vpos, 'f', 1, 64)),
		xattr("HPosition", "0.0"),
		xattr("Direction", "horizontal"),
	}
}

func weightItalicOf(seg Segment) (string, string) {
	weight := "normal"
	if seg.Bold {
		weight = "bold"
	}
	italic := "no"
	if seg.Italic {
		italic = "yes"
	}
	return weight, italic
}

func writeLineSegments(enc *xml.Encoder, eff EffectiveFont, outlineWidth float64, outlineRGBA ass.RGBA, vpos float64, segments []Segment, baseBold, baseItalic bool) error {
	uniform := true
	for _, s := range segments[1:] {
		if s.Bold != segments[0].Bold || s.Italic != segments[0].Italic {
			uniform = false
			break
		}
	}

	if uniform {
		weight, italic := weightItalicOf(segments[0])
		text := visibleTextOf(segments)
		return writeLine(enc, eff, weight, italic, outlineWidth, outlineRGBA, vpos, text)
	}

	if err := startElem(enc, "Font", fontAttrs(eff, "normal", "no", outlineWidth, outlineRGBA)...); err != nil {
		return err
	}
	if err := startElem(enc, "Text", textAttrs(vpos)...); err != nil {
		return err
	}
	for _, seg := range segments {
		neutral := seg.Bold == baseBold && seg.Italic == baseItalic
		if neutral {
			if err := charData(enc, seg.Text); err != nil {
				return err
			}
			continue
		}
		weight, italic := weightItalicOf(seg)
		if err := startElem(enc, "Font", xattr("Weight", weight), xattr("Italic", italic)); err != nil {
			return err
		}
		if err := charData(enc, seg.Text); err != nil {
			return err
		}
		if err := endElem(enc, "Font"); err != nil {
			return err
		}
	}
	if err := endElem(enc, "Text"); err != nil {
		return err
	}
	return endElem(enc, "Font")
}
