package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

type similarityRepository struct {
	mu    sync.RWMutex
	edges map[string]*model.Similarity
	order []string
}

func newSimilarityRepository() *similarityRepository {
	return &similarityRepository{
		edges: make(map[string]*model.Similarity),
	}
}

func copySimilarity(s *model.Similarity) *model.Similarity {
	copied := *s
	return &copied
}

func (r *similarityRepository) ReplaceAll(ctx context.Context, edges []*model.Similarity) error {
	for _, edge := range edges {
		if err := edge.Validate(); err != nil {
			return goerr.Wrap(err, "invalid similarity edge")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, edge := range edges {
		key := edge.PairKey()
		stored := copySimilarity(edge)
		stored.CreatedAt = now
		if _, exists := r.edges[key]; !exists {
			r.order = append(r.order, key)
		}
		r.edges[key] = stored
	}
	return nil
}

func (r *similarityRepository) ListInvolving(ctx context.Context, id types.ArtifactID) ([]*model.Similarity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Similarity, 0)
	for _, key := range r.order {
		edge, exists := r.edges[key]
		if !exists {
			continue
		}
		if edge.SourceID == id || edge.TargetID == id {
			result = append(result, copySimilarity(edge))
		}
	}

	// Value descending; ties keep insertion order.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Value > result[j].Value
	})
	return result, nil
}

func (r *similarityRepository) DeleteInvolving(ctx context.Context, id types.ArtifactID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.order[:0]
	for _, key := range r.order {
		edge, exists := r.edges[key]
		if exists && (edge.SourceID == id || edge.TargetID == id) {
			delete(r.edges, key)
			continue
		}
		remaining = append(remaining, key)
	}
	r.order = remaining
	return nil
}
