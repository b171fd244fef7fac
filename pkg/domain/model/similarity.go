package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

// Similarity is a scored, directional edge between two artifacts. The
// unordered pair (SourceID, TargetID) is unique: storage canonicalizes the
// pair as min(id)/max(id) and keeps the computed-from direction separately,
// so re-running the builder upserts instead of duplicating rows.
type Similarity struct {
	SourceID types.ArtifactID
	TargetID types.ArtifactID
	Value    float64

	CreatedAt time.Time
}

// Validate checks the similarity edge invariants
func (x *Similarity) Validate() error {
	if err := x.SourceID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid similarity source")
	}
	if err := x.TargetID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid similarity target")
	}
	if x.SourceID == x.TargetID {
		return goerr.New("similarity endpoints must differ", goerr.V("id", x.SourceID))
	}
	if x.Value < 0 || x.Value > 1 {
		return goerr.New("similarity value must be in [0,1]", goerr.V("value", x.Value))
	}
	return nil
}

// PairKey returns the canonical unordered-pair key "min-max" used as the
// storage identity of the edge
func (x *Similarity) PairKey() string {
	lo, hi := x.SourceID, x.TargetID
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// Other returns the endpoint that is not the given artifact, and whether
// the artifact is an endpoint of this edge at all
func (x *Similarity) Other(id types.ArtifactID) (types.ArtifactID, bool) {
	switch id {
	case x.SourceID:
		return x.TargetID, true
	case x.TargetID:
		return x.SourceID, true
	default:
		return 0, false
	}
}
