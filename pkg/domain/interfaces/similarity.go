package interfaces

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

// SimilarityRepository defines the interface for Similarity edge
// persistence. Edges are identified by their unordered endpoint pair;
// writing an edge for an existing pair replaces its value.
type SimilarityRepository interface {
	// ReplaceAll atomically upserts every edge computed for one source
	// artifact in a single transaction boundary, all-or-nothing.
	ReplaceAll(ctx context.Context, edges []*model.Similarity) error

	// ListInvolving retrieves all edges where the artifact appears as
	// either endpoint, ordered by value descending. Ties keep the storage
	// order, no further guarantee.
	ListInvolving(ctx context.Context, id types.ArtifactID) ([]*model.Similarity, error)

	// DeleteInvolving removes every edge where the artifact appears as
	// either endpoint. Used as delete-cascade when the artifact goes away.
	DeleteInvolving(ctx context.Context, id types.ArtifactID) error
}
