package cinecanvas

import (
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"cinecanvas/internal/ass"
)

// xmlElem is a minimal generic XML tree, built directly off xml.Decoder
// tokens rather than struct tags, because CineCanvas's one irregular shape
// (a <Text> whose children mix character data and inline <Font> runs) isn't
// expressible as a fixed struct. Everything else about this format (a
// strict attribute-bearing element hierarchy) would fit struct tags just
// fine; this tree is the one exception.
type xmlElem struct {
	Name     string
	Attrs    map[string]string
	Children []*xmlElem
	Parts    []xmlPart
}

type xmlPart struct {
	Text string
	Elem *xmlElem
}

func parseXMLTree(r io.Reader) (*xmlElem, error) {
	dec := xml.NewDecoder(r)
	var root *xmlElem
	var stack []*xmlElem
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &xmlElem{Name: t.Name.Local, Attrs: map[string]string{}}
			for _, a := range t.Attr {
				e.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
				parent.Parts = append(parent.Parts, xmlPart{Elem: e})
			} else {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			txt := string(t)
			if len(cur.Parts) > 0 && cur.Parts[len(cur.Parts)-1].Elem == nil {
				cur.Parts[len(cur.Parts)-1].Text += txt
			} else {
				cur.Parts = append(cur.Parts, xmlPart{Text: txt})
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

func (e *xmlElem) attr(name, def string) string {
	if v, ok := e.Attrs[name]; ok {
		return v
	}
	return def
}

func (e *xmlElem) child(name string) *xmlElem {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *xmlElem) childrenNamed(name string) []*xmlElem {
	var out []*xmlElem
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *xmlElem) descendantsNamed(name string) []*xmlElem {
	var out []*xmlElem
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.descendantsNamed(name)...)
	}
	return out
}

// allText concatenates character data across the subtree in document
// order, folding inline elements (such as a bold <Font> run) into plain
// visible text — the reader never reconstructs override tags from inline
// markup, it only needs the visible characters.
func (e *xmlElem) allText() string {
	var sb strings.Builder
	for _, p := range e.Parts {
		if p.Elem != nil {
			sb.WriteString(p.Elem.allText())
		} else {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// sniffRootElement reports the root element's local name without fully
// validating the document, for CanRead's cheap selection check.
func sniffRootElement(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

// Read implements spec.md §4.5: parse the CineCanvas document at path into
// a fresh ass.Document. Times are read as written; no frame-rate
// quantization is applied on read.
func Read(path string) (ass.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newParseError(path, err)
	}
	defer f.Close()

	root, err := parseXMLTree(f)
	if err != nil {
		return nil, newParseError(path, err)
	}
	if root.Name != "DCSubtitle" {
		return nil, newParseError(path, errRootMismatch(root.Name))
	}

	doc := ass.NewScript()
	doc.LoadDefault()

	var containerFont *xmlElem
	for _, c := range root.Children {
		switch c.Name {
		case "MovieTitle":
			doc.SetScriptInfo("Title", c.allText())
		case "Language":
			doc.SetScriptInfo("Language", c.allText())
		case "Font":
			if containerFont == nil {
				containerFont = c
			}
		}
	}

	doc.RemoveStyle("Default")
	if containerFont != nil {
		doc.AddStyle(styleFromContainerFont(containerFont))
	} else {
		doc.AddStyle(defaultCineCanvasStyle())
	}

	var events []*ass.Event
	for _, fontElem := range root.childrenNamed("Font") {
		for _, sub := range fontElem.childrenNamed("Subtitle") {
			events = append(events, readSubtitle(sub))
		}
	}

	if len(events) == 0 {
		events = append(events, &ass.Event{StyleName: "CineCanvas"})
	}
	doc.SetEvents(events)

	return doc, nil
}

func errRootMismatch(got string) error {
	return &rootMismatchError{got: got}
}

type rootMismatchError struct{ got string }

func (e *rootMismatchError) Error() string {
	return "root element is <" + e.got + ">, expected <DCSubtitle>"
}

func styleFromContainerFont(f *xmlElem) *ass.Style {
	size, _ := strconv.Atoi(f.attr("Size", "42"))
	if size <= 0 {
		size = 42
	}
	outlineWidth := 0.0
	effect := f.attr("Effect", "none")
	effectColor := f.attr("EffectColor", "000000FF")
	if effect == "border" || effect == "shadow" {
		outlineWidth = 2
	}
	return &ass.Style{
		Name:         "CineCanvas",
		Font:         f.attr("Script", "Arial"),
		FontSize:     size,
		Bold:         f.attr("Weight", "normal") == "bold",
		Italic:       f.attr("Italic", "no") == "yes",
		PrimaryRGBA:  ParseColor(f.attr("Color", "FFFFFFFF")),
		OutlineRGBA:  ParseColor(effectColor),
		OutlineWidth: outlineWidth,
		Alignment:    ass.AlignBottomCenter,
		Margins:      ass.Margins{Left: 10, Right: 10, Vertical: 10},
	}
}

func defaultCineCanvasStyle() *ass.Style {
	return &ass.Style{
		Name:         "CineCanvas",
		Font:         "Arial",
		FontSize:     42,
		PrimaryRGBA:  ass.RGBA{R: 255, G: 255, B: 255, A: 0},
		OutlineRGBA:  ass.RGBA{A: 0},
		OutlineWidth: 2,
		Alignment:    ass.AlignBottomCenter,
		Margins:      ass.Margins{Left: 10, Right: 10, Vertical: 10},
	}
}

func readSubtitle(sub *xmlElem) *ass.Event {
	start := ParseTime(sub.attr("TimeIn", "00:00:00:000"))
	end := ParseTime(sub.attr("TimeOut", "00:00:05:000"))

	fadeIn, _ := strconv.Atoi(sub.attr("FadeUpTime", "0"))
	fadeOut, _ := strconv.Atoi(sub.attr("FadeDownTime", "0"))

	container := sub
	if fonts := sub.childrenNamed("Font"); len(fonts) == 1 {
		container = fonts[0]
	}

	type textRun struct {
		vpos    float64
		content string
	}
	var runs []textRun

	texts := container.descendantsNamed("Text")
	if len(texts) == 0 && container != sub {
		texts = sub.childrenNamed("Text")
	}
	for _, t := range texts {
		vpos, _ := strconv.ParseFloat(t.attr("VPosition", "0"), 64)
		runs = append(runs, textRun{vpos: vpos, content: t.allText()})
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].vpos > runs[j].vpos })

	lines := make([]string, len(runs))
	for i, r := range runs {
		lines[i] = r.content
	}
	text := strings.Join(lines, `\N`)

	if fadeIn != 0 || fadeOut != 0 {
		text = "{\\fad(" + strconv.Itoa(fadeIn) + "," + strconv.Itoa(fadeOut) + ")}" + text
	}

	return &ass.Event{
		Start:     start,
		End:       end,
		Text:      text,
		StyleName: "CineCanvas",
	}
}
