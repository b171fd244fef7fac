package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// ArtifactID is the caller-assigned identifier of an artifact. IDs share a
// single space across all artifact kinds: a Dataset and a BuildingBlock can
// never hold the same ID.
type ArtifactID int64

// Validate checks if the ArtifactID is valid
func (x ArtifactID) Validate() error {
	if x <= 0 {
		return goerr.New("artifact ID must be a positive integer", goerr.V("id", x), goerr.T(ErrTagBadRequest))
	}
	return nil
}

// String returns the decimal representation of the ArtifactID
func (x ArtifactID) String() string {
	return strconv.FormatInt(int64(x), 10)
}

// ParseArtifactID parses a decimal string into an ArtifactID
func ParseArtifactID(s string) (ArtifactID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "artifact ID must be an integer", goerr.V("input", s), goerr.T(ErrTagBadRequest))
	}
	id := ArtifactID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ArtifactKind discriminates the concrete kind of an artifact. The kind is
// resolved once at creation time and never changes.
type ArtifactKind string

const (
	KindDataset       ArtifactKind = "dataset"
	KindBuildingBlock ArtifactKind = "buildingblock"
	KindApplication   ArtifactKind = "app"
	KindIdea          ArtifactKind = "idea"

	// KindAny is the wildcard used by recommendation queries to match
	// every concrete kind. It is never stored.
	KindAny ArtifactKind = "artifact"
)

// AllArtifactKinds returns the concrete (storable) artifact kinds
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{
		KindDataset,
		KindBuildingBlock,
		KindApplication,
		KindIdea,
	}
}

// IsValid checks if the kind is a concrete artifact kind
func (k ArtifactKind) IsValid() bool {
	switch k {
	case KindDataset, KindBuildingBlock, KindApplication, KindIdea:
		return true
	default:
		return false
	}
}

// String returns the string representation of the artifact kind
func (k ArtifactKind) String() string {
	return string(k)
}

// ParseArtifactKind parses a target-kind token. It accepts the wildcard
// "artifact" in addition to the concrete kinds.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	kind := ArtifactKind(s)
	if kind == KindAny || kind.IsValid() {
		return kind, nil
	}
	return "", goerr.New("invalid artifact kind", goerr.V("kind", s), goerr.T(ErrTagBadRequest))
}
