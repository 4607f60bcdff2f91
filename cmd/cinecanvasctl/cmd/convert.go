package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cinecanvas/internal/ass"
	"cinecanvas/internal/cinecanvas"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between CineCanvas XML and an ASS document",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var cineCanvasToASSCmd = &cobra.Command{
	Use:   "cinecanvas-to-ass [input.xml]",
	Short: "Parse a CineCanvas XML file and write its ASS document as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		codec := &cinecanvas.Codec{UUIDGen: cinecanvas.RandomUUIDGenerator{}}
		doc, err := codec.Read(input)
		if err != nil {
			fmt.Printf("Error reading CineCanvas file '%s': %v\n", input, err)
			os.Exit(1)
		}

		if output == "" {
			ext := defaultExtensionFor(format)
			output = fmt.Sprintf("cinecanvasctl_%d.ass%s", time.Now().Unix(), ext)
		}
		format = resolveFormat(format, output)

		data, err := marshalDocument(documentJSON(doc), format)
		if err != nil {
			fmt.Printf("Error encoding ASS document: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(output, data, 0o644); err != nil {
			fmt.Printf("Error writing '%s': %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote ASS document: %s\n", output)
	},
}

var assToCineCanvasCmd = &cobra.Command{
	Use:   "ass-to-cinecanvas [input.ass.json]",
	Short: "Render an ASS document (JSON) as CineCanvas XML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]
		output, _ := cmd.Flags().GetString("output")
		frameRate, _ := cmd.Flags().GetFloat64("frame-rate")
		movieTitle, _ := cmd.Flags().GetString("movie-title")
		reelNumber, _ := cmd.Flags().GetInt("reel-number")
		languageCode, _ := cmd.Flags().GetString("language-code")

		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Printf("Error reading '%s': %v\n", input, err)
			os.Exit(1)
		}

		doc, err := documentFromFile(data, input)
		if err != nil {
			fmt.Printf("Error parsing ASS document '%s': %v\n", input, err)
			os.Exit(1)
		}

		if output == "" {
			output = fmt.Sprintf("cinecanvasctl_%d.xml", time.Now().Unix())
		}

		settings := cinecanvas.DefaultSettings(output, nil)
		if frameRate > 0 {
			settings.FrameRateChoice = cinecanvas.ValidateFrameRateChoice(frameRate)
		}
		if movieTitle != "" {
			settings.MovieTitle = cinecanvas.ValidateMovieTitle(movieTitle)
		}
		if reelNumber > 0 {
			settings.ReelNumber = cinecanvas.ValidateReelNumber(reelNumber)
		}
		if languageCode != "" {
			settings.LanguageCode = cinecanvas.ValidateLanguageCode(languageCode)
		}

		oracle := cinecanvas.NewFrameRateOracle(settings.FrameRateChoice)
		codec := &cinecanvas.Codec{UUIDGen: cinecanvas.RandomUUIDGenerator{}}

		warnings, err := codec.Write(doc, output, oracle, settings)
		if err != nil {
			fmt.Printf("Error writing CineCanvas file '%s': %v\n", output, err)
			os.Exit(1)
		}

		fmt.Printf("Wrote CineCanvas file: %s\n", output)
		if warnings != "" {
			fmt.Println(warnings)
		}
	},
}

func init() {
	cineCanvasToASSCmd.Flags().StringP("output", "o", "", "Output filename (defaults to cinecanvasctl_unixtime.ass.json, or .ass.yaml with --format yaml)")
	cineCanvasToASSCmd.Flags().String("format", "", "Output format: json or yaml (defaults to the output file's extension, json otherwise)")

	assToCineCanvasCmd.Flags().StringP("output", "o", "", "Output filename (defaults to cinecanvasctl_unixtime.xml)")
	assToCineCanvasCmd.Flags().Float64("frame-rate", 0, "Export frame rate (defaults to 24)")
	assToCineCanvasCmd.Flags().String("movie-title", "", "Movie title for the CineCanvas header")
	assToCineCanvasCmd.Flags().Int("reel-number", 0, "Reel number for the CineCanvas header")
	assToCineCanvasCmd.Flags().String("language-code", "", "Language code for the CineCanvas header")

	convertCmd.AddCommand(cineCanvasToASSCmd)
	convertCmd.AddCommand(assToCineCanvasCmd)
}

// docJSON is the CLI's flat shape for an ass.Document, independent of the
// HTTP layer's models.DocumentDTO (different host, same idea). It carries
// both json and yaml tags so documentJSON's output can be written in either
// format -- see marshalDocument/documentFromFile.
type docJSON struct {
	ScriptInfo map[string]string `json:"script_info,omitempty" yaml:"script_info,omitempty"`
	Styles     []styleJSON       `json:"styles" yaml:"styles"`
	Events     []eventJSON       `json:"events" yaml:"events"`
}

type styleJSON struct {
	Name         string  `json:"name" yaml:"name"`
	Font         string  `json:"font" yaml:"font"`
	FontSize     int     `json:"font_size" yaml:"font_size"`
	Bold         bool    `json:"bold" yaml:"bold"`
	Italic       bool    `json:"italic" yaml:"italic"`
	PrimaryColor string  `json:"primary_color" yaml:"primary_color"`
	OutlineColor string  `json:"outline_color" yaml:"outline_color"`
	OutlineWidth float64 `json:"outline_width" yaml:"outline_width"`
	Alignment    int     `json:"alignment" yaml:"alignment"`
	MarginLeft   int     `json:"margin_left" yaml:"margin_left"`
	MarginRight  int     `json:"margin_right" yaml:"margin_right"`
	MarginV      int     `json:"margin_v" yaml:"margin_v"`
}

type eventJSON struct {
	StartMs   int64  `json:"start_ms" yaml:"start_ms"`
	EndMs     int64  `json:"end_ms" yaml:"end_ms"`
	Text      string `json:"text" yaml:"text"`
	StyleName string `json:"style_name" yaml:"style_name"`
	IsComment bool   `json:"is_comment,omitempty" yaml:"is_comment,omitempty"`
}

// resolveFormat picks json or yaml from an explicit --format flag, falling
// back to the output file's extension, and finally to json.
func resolveFormat(explicit, outputPath string) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	}
	if ext := strings.ToLower(filepath.Ext(outputPath)); ext == ".yaml" || ext == ".yml" {
		return "yaml"
	}
	return "json"
}

// defaultExtensionFor returns the filename extension for an explicit
// --format choice, used only when no --output path was given.
func defaultExtensionFor(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		return ".yaml"
	default:
		return ".json"
	}
}

func marshalDocument(doc docJSON, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// documentFromFile parses a document file as YAML when its extension says
// so, JSON otherwise -- the two formats share the same docJSON tags.
func documentFromFile(data []byte, path string) (*ass.Script, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var in docJSON
		if err := yaml.Unmarshal(data, &in); err != nil {
			return nil, err
		}
		return scriptFromDocJSON(in), nil
	}
	return documentFromJSON(data)
}

func documentJSON(doc ass.Document) docJSON {
	info := map[string]string{}
	for _, key := range []string{"Title", "ScriptType"} {
		if v, ok := doc.ScriptInfo(key); ok {
			info[key] = v
		}
	}

	out := docJSON{ScriptInfo: info}
	for _, s := range doc.Styles() {
		out.Styles = append(out.Styles, styleJSON{
			Name:         s.Name,
			Font:         s.Font,
			FontSize:     s.FontSize,
			Bold:         s.Bold,
			Italic:       s.Italic,
			PrimaryColor: fmt.Sprintf("%02X%02X%02X%02X", s.PrimaryRGBA.R, s.PrimaryRGBA.G, s.PrimaryRGBA.B, s.PrimaryRGBA.A),
			OutlineColor: fmt.Sprintf("%02X%02X%02X%02X", s.OutlineRGBA.R, s.OutlineRGBA.G, s.OutlineRGBA.B, s.OutlineRGBA.A),
			OutlineWidth: s.OutlineWidth,
			Alignment:    int(s.Alignment),
			MarginLeft:   s.Margins.Left,
			MarginRight:  s.Margins.Right,
			MarginV:      s.Margins.Vertical,
		})
	}
	for _, e := range doc.Events() {
		out.Events = append(out.Events, eventJSON{
			StartMs:   int64(e.Start),
			EndMs:     int64(e.End),
			Text:      e.Text,
			StyleName: e.StyleName,
			IsComment: e.IsComment,
		})
	}
	return out
}

func documentFromJSON(data []byte) (*ass.Script, error) {
	var in docJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return scriptFromDocJSON(in), nil
}

func scriptFromDocJSON(in docJSON) *ass.Script {
	doc := ass.NewScript()
	for k, v := range in.ScriptInfo {
		doc.SetScriptInfo(k, v)
	}
	for _, s := range in.Styles {
		doc.AddStyle(&ass.Style{
			Name:         s.Name,
			Font:         s.Font,
			FontSize:     s.FontSize,
			Bold:         s.Bold,
			Italic:       s.Italic,
			PrimaryRGBA:  parseColorJSON(s.PrimaryColor),
			OutlineRGBA:  parseColorJSON(s.OutlineColor),
			OutlineWidth: s.OutlineWidth,
			Alignment:    ass.Alignment(s.Alignment),
			Margins:      ass.Margins{Left: s.MarginLeft, Right: s.MarginRight, Vertical: s.MarginV},
		})
	}
	events := make([]*ass.Event, 0, len(in.Events))
	for _, e := range in.Events {
		events = append(events, &ass.Event{
			Start:     ass.Time(e.StartMs),
			End:       ass.Time(e.EndMs),
			Text:      e.Text,
			StyleName: e.StyleName,
			IsComment: e.IsComment,
		})
	}
	doc.SetEvents(events)
	return doc
}

func parseColorJSON(s string) ass.RGBA {
	if len(s) < 8 {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	var r, g, b, a uint8
	if _, err := fmt.Sscanf(s, "%02X%02X%02X%02X", &r, &g, &b, &a); err != nil {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	return ass.RGBA{R: r, G: g, B: b, A: a}
}
