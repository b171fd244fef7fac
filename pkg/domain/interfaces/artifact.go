package interfaces

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

// ArtifactRepository defines the interface for Artifact data persistence.
// Artifact IDs are caller-assigned and unique across every kind.
type ArtifactRepository interface {
	// Create stores a new artifact. It fails if the ID is already taken
	// by any kind.
	Create(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error)

	// Update replaces an existing artifact. The kind must not change.
	Update(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error)

	// Get retrieves an artifact by ID regardless of kind
	Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error)

	// List retrieves artifacts of the given kind. types.KindAny lists the
	// whole corpus.
	List(ctx context.Context, kind types.ArtifactKind) ([]*model.Artifact, error)

	// ListApplicationsByMaxAge retrieves applications whose minimum age is
	// less than or equal to maxAge
	ListApplicationsByMaxAge(ctx context.Context, maxAge int) ([]*model.Artifact, error)

	// Delete removes an artifact by ID
	Delete(ctx context.Context, id types.ArtifactID) error
}
