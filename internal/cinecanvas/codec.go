// Package cinecanvas implements a bidirectional codec between CineCanvas
// XML (the DCP subtitle format) and an ASS-shaped in-memory document
// (internal/ass). The core is synchronous and single-threaded per
// invocation: no process-wide state is held, and each Read/Write call owns
// its own XML tree, event copy, and style lookup (spec.md §5).
package cinecanvas

import (
	"path/filepath"
	"strings"

	"cinecanvas/internal/ass"
)

// Extension is the only file extension this codec registers for.
const Extension = "xml"

// Codec is the host-facing façade spec.md §4.7/§6 describes: a named
// object exposing read/write wildcards plus CanRead/CanWrite/Read/Write.
type Codec struct {
	UUIDGen UUIDGenerator
}

// New returns a Codec with no UUID generator wired in (SubtitleID falls
// back to the spec's placeholder). Callers that want real RFC-4122 IDs
// should set UUIDGen, e.g. to RandomUUIDGenerator{}.
func New() *Codec {
	return &Codec{}
}

func (c *Codec) Name() string { return "CineCanvas" }

func (c *Codec) Extensions() []string { return []string{Extension} }

// CanRead reports whether path is a candidate for Read: its extension must
// be "xml" and its root element must be <DCSubtitle>. Any failure to even
// open/parse the file for sniffing also means "decline", not an error —
// selection never raises.
func (c *Codec) CanRead(path string) bool {
	if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), Extension) {
		return false
	}
	root, err := sniffRootElement(path)
	if err != nil {
		return false
	}
	return root == "DCSubtitle"
}

// CanWrite always returns true: there is no format-level capability gating
// on the document being written.
func (c *Codec) CanWrite(doc ass.Document) bool { return true }

// Read loads the CineCanvas document at path. Callers should have already
// confirmed CanRead(path); Read itself re-validates the root element and
// returns a *ParseError rather than panicking if it doesn't match, to cover
// direct callers that skip selection.
func (c *Codec) Read(path string) (ass.Document, error) {
	if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), Extension) {
		return nil, newCanReadRejected("extension is not ." + Extension)
	}
	return Read(path)
}

// Write serializes doc to path as CineCanvas XML using oracle for frame
// quantization and settings for the DCP-specific header fields. It returns
// the pre-flight warning string alongside a successful write.
func (c *Codec) Write(doc ass.Document, path string, oracle FrameRateOracle, settings ExportSettings) (string, error) {
	return NewWriter(c.UUIDGen).Write(doc, path, oracle, settings)
}
