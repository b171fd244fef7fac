package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

type artifactRepository struct {
	mu        sync.RWMutex
	artifacts map[types.ArtifactID]*model.Artifact
	order     []types.ArtifactID
}

func newArtifactRepository() *artifactRepository {
	return &artifactRepository{
		artifacts: make(map[types.ArtifactID]*model.Artifact),
	}
}

// copyArtifact creates a deep copy of an artifact
func copyArtifact(a *model.Artifact) *model.Artifact {
	copied := &model.Artifact{
		ID:        a.ID,
		Kind:      a.Kind,
		Lang:      a.Lang,
		Scope:     a.Scope,
		MinAge:    a.MinAge,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Tags != nil {
		copied.Tags = make([]string, len(a.Tags))
		copy(copied.Tags, a.Tags)
	}
	return copied
}

func (r *artifactRepository) Create(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[artifact.ID]; exists {
		return nil, goerr.New("artifact ID already exists",
			goerr.V("id", artifact.ID), goerr.T(types.ErrTagBadRequest))
	}

	now := time.Now().UTC()
	created := copyArtifact(artifact)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.artifacts[created.ID] = created
	r.order = append(r.order, created.ID)
	return copyArtifact(created), nil
}

func (r *artifactRepository) Update(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.artifacts[artifact.ID]
	if !exists {
		return nil, goerr.New("artifact not found",
			goerr.V("id", artifact.ID), goerr.T(types.ErrTagNotFound))
	}
	if current.Kind != artifact.Kind {
		return nil, goerr.New("artifact kind cannot change",
			goerr.V("id", artifact.ID), goerr.V("kind", current.Kind),
			goerr.V("requested", artifact.Kind), goerr.T(types.ErrTagBadRequest))
	}

	updated := copyArtifact(artifact)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.artifacts[updated.ID] = updated
	return copyArtifact(updated), nil
}

func (r *artifactRepository) Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, exists := r.artifacts[id]
	if !exists {
		return nil, goerr.New("artifact not found",
			goerr.V("id", id), goerr.T(types.ErrTagNotFound))
	}
	return copyArtifact(artifact), nil
}

func (r *artifactRepository) List(ctx context.Context, kind types.ArtifactKind) ([]*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Artifact, 0, len(r.order))
	for _, id := range r.order {
		a, exists := r.artifacts[id]
		if !exists {
			continue
		}
		if kind != types.KindAny && a.Kind != kind {
			continue
		}
		result = append(result, copyArtifact(a))
	}
	return result, nil
}

func (r *artifactRepository) ListApplicationsByMaxAge(ctx context.Context, maxAge int) ([]*model.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Artifact, 0)
	for _, id := range r.order {
		a, exists := r.artifacts[id]
		if !exists {
			continue
		}
		if a.Kind != types.KindApplication || a.MinAge > maxAge {
			continue
		}
		result = append(result, copyArtifact(a))
	}
	return result, nil
}

func (r *artifactRepository) Delete(ctx context.Context, id types.ArtifactID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[id]; !exists {
		return goerr.New("artifact not found",
			goerr.V("id", id), goerr.T(types.ErrTagNotFound))
	}
	delete(r.artifacts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
