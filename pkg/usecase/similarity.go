package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/model/config"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/service/tags"
	"github.com/opencity-lab/musette/pkg/utils/logging"
)

// SimilarityUseCase implements the pairwise similarity builder. It is
// invoked asynchronously whenever an artifact's tag set changes, and scans
// the whole corpus: O(N) artifact loads plus O(N·|tags|²) tag comparisons
// when fuzzy reconciliation is active. Acceptable off the write path.
type SimilarityUseCase struct {
	repo interfaces.Repository
	cfg  *config.RecommendConfig
}

// NewSimilarityUseCase creates a new SimilarityUseCase instance
func NewSimilarityUseCase(repo interfaces.Repository, cfg *config.RecommendConfig) *SimilarityUseCase {
	return &SimilarityUseCase{
		repo: repo,
		cfg:  cfg,
	}
}

// Rebuild recomputes every outbound similarity edge of the source artifact
// against the full corpus and persists edges with score > 0 in one atomic
// batch. Pairs that already exist are upserted, so rerunning against an
// unchanged corpus yields the same edge set.
func (uc *SimilarityUseCase) Rebuild(ctx context.Context, sourceID types.ArtifactID) error {
	source, err := uc.repo.Artifact().Get(ctx, sourceID)
	if err != nil {
		return goerr.Wrap(err, "failed to load similarity source")
	}

	corpus, err := uc.repo.Artifact().List(ctx, types.KindAny)
	if err != nil {
		return goerr.Wrap(err, "failed to list artifact corpus")
	}

	sourceSet := source.TagSet()
	stemmable := tags.IsSupportedLanguage(source.Lang)

	edges := make([]*model.Similarity, 0, len(corpus))
	for _, target := range corpus {
		// The source scores 1.0 against itself when it has tags; the
		// self pair is excluded from persistence below.
		var targetSet map[string]struct{}
		if stemmable {
			targetSet = target.TagSet()
		} else {
			targetSet = tags.Reconcile(source.Tags, target.Tags, uc.cfg.MaxEditDistance)
		}

		score := tags.Similarity(sourceSet, targetSet)
		if score <= 0 || target.ID == source.ID {
			continue
		}

		edges = append(edges, &model.Similarity{
			SourceID: source.ID,
			TargetID: target.ID,
			Value:    score,
		})
	}

	if err := uc.repo.Similarity().ReplaceAll(ctx, edges); err != nil {
		return goerr.Wrap(err, "failed to persist similarity edges",
			goerr.V("sourceID", sourceID), goerr.V("count", len(edges)))
	}

	logging.From(ctx).Info("similarity edges rebuilt",
		"source_id", sourceID, "corpus", len(corpus), "edges", len(edges))
	return nil
}
