package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/service/tags"
)

// rebuildTaskName labels async similarity rebuild jobs in logs
const rebuildTaskName = "similarity-rebuild"

// ArtifactUseCase handles artifact CRUD and the tag-change trigger: every
// mutation of an artifact's tag set enqueues an asynchronous rebuild of its
// outbound similarity edges.
type ArtifactUseCase struct {
	repo       interfaces.Repository
	similarity *SimilarityUseCase
	queue      interfaces.TaskQueue
}

// NewArtifactUseCase creates a new ArtifactUseCase instance
func NewArtifactUseCase(repo interfaces.Repository, similarity *SimilarityUseCase, queue interfaces.TaskQueue) *ArtifactUseCase {
	return &ArtifactUseCase{
		repo:       repo,
		similarity: similarity,
		queue:      queue,
	}
}

// Create stores a new artifact with a caller-assigned ID and triggers the
// similarity rebuild when it carries tags
func (uc *ArtifactUseCase) Create(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	if err := artifact.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid artifact")
	}
	artifact.NormalizeTags()

	created, err := uc.repo.Artifact().Create(ctx, artifact)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact")
	}

	if len(created.Tags) > 0 {
		uc.enqueueRebuild(ctx, created.ID)
	}
	return created, nil
}

// Update replaces an existing artifact. A changed tag set triggers the
// similarity rebuild.
func (uc *ArtifactUseCase) Update(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	if err := artifact.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid artifact")
	}
	artifact.NormalizeTags()

	current, err := uc.repo.Artifact().Get(ctx, artifact.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load artifact for update")
	}

	updated, err := uc.repo.Artifact().Update(ctx, artifact)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update artifact")
	}

	if !current.HasSameTags(updated.Tags) {
		uc.enqueueRebuild(ctx, updated.ID)
	}
	return updated, nil
}

// Get retrieves an artifact by ID, optionally pinned to a concrete kind
func (uc *ArtifactUseCase) Get(ctx context.Context, id types.ArtifactID, kind types.ArtifactKind) (*model.Artifact, error) {
	artifact, err := uc.repo.Artifact().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get artifact")
	}
	if kind != types.KindAny && artifact.Kind != kind {
		return nil, goerr.New("artifact not found",
			goerr.V("id", id), goerr.V("kind", kind), goerr.T(types.ErrTagNotFound))
	}
	return artifact, nil
}

// List retrieves artifacts of the given kind; types.KindAny lists all
func (uc *ArtifactUseCase) List(ctx context.Context, kind types.ArtifactKind) ([]*model.Artifact, error) {
	artifacts, err := uc.repo.Artifact().List(ctx, kind)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list artifacts")
	}
	return artifacts, nil
}

// Delete removes an artifact and cascades to every similarity edge
// involving it
func (uc *ArtifactUseCase) Delete(ctx context.Context, id types.ArtifactID, kind types.ArtifactKind) error {
	if _, err := uc.Get(ctx, id, kind); err != nil {
		return err
	}
	if err := uc.repo.Artifact().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete artifact")
	}
	if err := uc.repo.Similarity().DeleteInvolving(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to cascade similarity delete", goerr.V("id", id))
	}
	return nil
}

// StemTags reduces each tag to its stem in the given language. Unsupported
// languages pass tags through unchanged.
func (uc *ArtifactUseCase) StemTags(lang string, tagNames []string) []string {
	return tags.Stem(lang, tagNames)
}

func (uc *ArtifactUseCase) enqueueRebuild(ctx context.Context, id types.ArtifactID) {
	if uc.queue == nil {
		return
	}
	uc.queue.Enqueue(ctx, rebuildTaskName, func(ctx context.Context) error {
		return uc.similarity.Rebuild(ctx, id)
	})
}
