package cinecanvas

import "github.com/google/uuid"

// placeholderSubtitleID is the stable, non-cryptographic SubtitleID spec.md
// §9 allows when no UUID source is wired in.
const placeholderSubtitleID = "urn:uuid:00000000-0000-0000-0000-000000000000"

// UUIDGenerator is the host-supplied "UUID source" spec.md §9 describes as
// a boundary concern rather than a core one. Write uses placeholderSubtitleID
// when none is configured.
type UUIDGenerator interface {
	NewSubtitleID() string
}

// RandomUUIDGenerator produces RFC-4122 v4 identifiers via google/uuid, the
// concrete generator this repo wires into cmd/cinecanvasd and
// cmd/cinecanvasctl by default.
type RandomUUIDGenerator struct{}

func (RandomUUIDGenerator) NewSubtitleID() string {
	return "urn:uuid:" + uuid.NewString()
}
