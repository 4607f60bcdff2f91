package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cinecanvas/internal/api/models"
	"cinecanvas/internal/ass"
	"cinecanvas/internal/cinecanvas"
	"cinecanvas/pkg/logger"
)

// movieTitleCaser normalizes a movie title's casing the way a DCP reel
// header is conventionally presented, independent of the caller's input
// casing (e.g. "the last voyage" -> "The Last Voyage").
var movieTitleCaser = cases.Title(language.Und, cases.NoLower)

// ConvertHandler exposes the CineCanvas codec over HTTP: one route per
// direction, each a thin JSON wrapper over cinecanvas.Codec.
type ConvertHandler struct {
	codec *cinecanvas.Codec
	log   logger.Logger
}

func NewConvertHandler(codec *cinecanvas.Codec, log logger.Logger) *ConvertHandler {
	return &ConvertHandler{codec: codec, log: log}
}

// CineCanvasToASS handles POST /api/v1/convert/cinecanvas-to-ass.
func (h *ConvertHandler) CineCanvasToASS(c *gin.Context) {
	var req models.CineCanvasToASSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	path, cleanup, err := writeTempXML(req.XML)
	if err != nil {
		c.Error(err)
		return
	}
	defer cleanup()

	doc, err := h.codec.Read(path)
	if err != nil {
		h.log.Errorf("cinecanvas read failed: %v", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.CineCanvasToASSResponse{Document: toDTO(doc)})
}

// ASSToCineCanvas handles POST /api/v1/convert/ass-to-cinecanvas.
func (h *ConvertHandler) ASSToCineCanvas(c *gin.Context) {
	var req models.ASSToCineCanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	doc := fromDTO(req.Document)

	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("cinecanvas-out-%d.xml", os.Getpid()))
	defer os.Remove(outPath)

	settings := cinecanvas.DefaultSettings(outPath, nil)
	if req.FrameRate > 0 {
		settings.FrameRateChoice = cinecanvas.ValidateFrameRateChoice(req.FrameRate)
	}
	if req.MovieTitle != "" {
		settings.MovieTitle = movieTitleCaser.String(cinecanvas.ValidateMovieTitle(req.MovieTitle))
	}
	if req.ReelNumber > 0 {
		settings.ReelNumber = cinecanvas.ValidateReelNumber(req.ReelNumber)
	}
	if req.LanguageCode != "" {
		settings.LanguageCode = cinecanvas.ValidateLanguageCode(req.LanguageCode)
	}
	settings.IncludeFontReference = req.IncludeFontReference
	settings.FontURI = req.FontURI

	oracle := cinecanvas.NewFrameRateOracle(settings.FrameRateChoice)

	warnings, err := h.codec.Write(doc, outPath, oracle, settings)
	if err != nil {
		h.log.Errorf("cinecanvas write failed: %v", err)
		c.Error(err)
		return
	}

	xmlBytes, err := os.ReadFile(outPath)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ASSToCineCanvasResponse{
		XML:      string(xmlBytes),
		Warnings: warnings,
	})
}

func writeTempXML(xmlText string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "cinecanvas-in-*.xml")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.WriteString(xmlText); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}

func toDTO(doc ass.Document) models.DocumentDTO {
	info := map[string]string{}
	for _, key := range []string{"Title", "ScriptType"} {
		if v, ok := doc.ScriptInfo(key); ok {
			info[key] = v
		}
	}

	dto := models.DocumentDTO{ScriptInfo: info}
	for _, s := range doc.Styles() {
		dto.Styles = append(dto.Styles, models.StyleDTO{
			Name:         s.Name,
			Font:         s.Font,
			FontSize:     s.FontSize,
			Bold:         s.Bold,
			Italic:       s.Italic,
			PrimaryColor: hexColor(s.PrimaryRGBA),
			OutlineColor: hexColor(s.OutlineRGBA),
			OutlineWidth: s.OutlineWidth,
			Alignment:    int(s.Alignment),
			MarginLeft:   s.Margins.Left,
			MarginRight:  s.Margins.Right,
			MarginV:      s.Margins.Vertical,
		})
	}
	for _, e := range doc.Events() {
		dto.Events = append(dto.Events, models.EventDTO{
			StartMs:   int64(e.Start),
			EndMs:     int64(e.End),
			Text:      e.Text,
			StyleName: e.StyleName,
			IsComment: e.IsComment,
		})
	}
	return dto
}

func fromDTO(dto models.DocumentDTO) *ass.Script {
	doc := ass.NewScript()
	for k, v := range dto.ScriptInfo {
		doc.SetScriptInfo(k, v)
	}
	for _, s := range dto.Styles {
		doc.AddStyle(&ass.Style{
			Name:         s.Name,
			Font:         s.Font,
			FontSize:     s.FontSize,
			Bold:         s.Bold,
			Italic:       s.Italic,
			PrimaryRGBA:  parseHexColor(s.PrimaryColor),
			OutlineRGBA:  parseHexColor(s.OutlineColor),
			OutlineWidth: s.OutlineWidth,
			Alignment:    ass.Alignment(s.Alignment),
			Margins:      ass.Margins{Left: s.MarginLeft, Right: s.MarginRight, Vertical: s.MarginV},
		})
	}
	events := make([]*ass.Event, 0, len(dto.Events))
	for _, e := range dto.Events {
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

// hexColor/parseHexColor use ASS-alpha convention directly (0 = opaque),
// unlike cinecanvas.FormatColor/ParseColor which complement to CineCanvas
// alpha -- this is the wire format for the ASS side of the API, not the
// CineCanvas XML side.
func hexColor(c ass.RGBA) string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func parseHexColor(s string) ass.RGBA {
	if len(s) < 8 {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	var r, g, b, a uint8
	if _, err := fmt.Sscanf(s, "%02X%02X%02X%02X", &r, &g, &b, &a); err != nil {
		return ass.RGBA{R: 255, G: 255, B: 255, A: 0}
	}
	return ass.RGBA{R: r, G: g, B: b, A: a}
}
