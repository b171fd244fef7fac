package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/model/config"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/service/geocoder"
	"github.com/opencity-lab/musette/pkg/service/tags"
	"github.com/opencity-lab/musette/pkg/utils/logging"
)

// RecommendUseCase serves the two recommendation queries: edge-based
// artifact-to-artifact recommendation, and the geographic/demographic app
// recommendation pipeline built on the external profile and geocoding
// collaborators.
type RecommendUseCase struct {
	repo    interfaces.Repository
	cfg     *config.RecommendConfig
	geo     interfaces.Geocoder
	profile interfaces.ProfileService
}

// NewRecommendUseCase creates a new RecommendUseCase instance
func NewRecommendUseCase(repo interfaces.Repository, cfg *config.RecommendConfig, geo interfaces.Geocoder, profile interfaces.ProfileService) *RecommendUseCase {
	return &RecommendUseCase{
		repo:    repo,
		cfg:     cfg,
		geo:     geo,
		profile: profile,
	}
}

// Recommend returns the ids of artifacts similar to the source, most
// similar first, restricted to the given kind (types.KindAny matches every
// kind). Edges are stored directionally but queried from both endpoints.
func (uc *RecommendUseCase) Recommend(ctx context.Context, sourceID types.ArtifactID, kind types.ArtifactKind) ([]types.ArtifactID, error) {
	if !kind.IsValid() && kind != types.KindAny {
		return nil, goerr.New("invalid target kind",
			goerr.V("kind", kind), goerr.T(types.ErrTagBadRequest))
	}

	if _, err := uc.repo.Artifact().Get(ctx, sourceID); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve recommendation source")
	}

	edges, err := uc.repo.Similarity().ListInvolving(ctx, sourceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list similarity edges", goerr.V("sourceID", sourceID))
	}

	ids := make([]types.ArtifactID, 0, len(edges))
	for _, edge := range edges {
		otherID, ok := edge.Other(sourceID)
		if !ok {
			continue
		}

		other, err := uc.repo.Artifact().Get(ctx, otherID)
		if err != nil {
			// A dangling edge means the other artifact was deleted after
			// the edge was built. Skip it.
			if goerr.HasTag(err, types.ErrTagNotFound) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to resolve recommended artifact", goerr.V("id", otherID))
		}

		if kind != types.KindAny && other.Kind != kind {
			continue
		}
		ids = append(ids, otherID)
	}
	return ids, nil
}

// RecommendApps returns the ids of applications recommended for a user,
// highest id first. Callers pass lat and lon as types.UnsetCoordinate when
// the client did not supply a point; the user's home location is geocoded
// instead, with a fixed region fallback.
func (uc *RecommendUseCase) RecommendApps(ctx context.Context, userID string, lat, lon float64, radiusKM float64) ([]types.ArtifactID, error) {
	if uc.profile == nil || uc.geo == nil {
		return nil, goerr.New("app recommendation requires profile and geocoding services",
			goerr.T(types.ErrTagService))
	}

	profile, err := uc.profile.GetUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch user profile", goerr.V("userID", userID))
	}

	point, err := uc.resolveUserPoint(ctx, profile, lat, lon)
	if err != nil {
		return nil, err
	}

	userTags, err := uc.affinityTags(ctx, profile)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.repo.Artifact().ListApplicationsByMaxAge(ctx, profile.Age)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list candidate applications")
	}

	logger := logging.From(ctx)
	ids := make([]types.ArtifactID, 0, len(candidates))
	for _, app := range candidates {
		if point == nil {
			// Unresolved user point with no fallback available. Every
			// distance check fails, the result stays empty.
			continue
		}

		appPoint, err := uc.geo.Geocode(ctx, app.Scope)
		if err != nil || appPoint == nil {
			logger.Warn("skipping app with unresolvable scope",
				"app_id", app.ID, "scope", app.Scope, "error", err)
			continue
		}
		if geocoder.DistanceKM(*point, *appPoint) > radiusKM {
			continue
		}

		if len(userTags) > 0 {
			stemmed := tags.Stem(app.Lang, userTags)
			score := tags.Similarity(tags.Set(stemmed), app.TagSet())
			if score <= uc.cfg.MinScore {
				continue
			}
		}
		ids = append(ids, app.ID)
	}

	// Newer artifacts carry higher ids, so id-descending surfaces the most
	// recently registered apps first among those that qualify.
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids, nil
}

// resolveUserPoint picks the geographic point the distance filter runs
// against. Caller-supplied coordinates win; otherwise the user's home
// location is geocoded with the configured region as fallback. A user with
// no home location yields a nil point and no fallback.
func (uc *RecommendUseCase) resolveUserPoint(ctx context.Context, profile *model.UserProfile, lat, lon float64) (*model.Location, error) {
	if lat != types.UnsetCoordinate || lon != types.UnsetCoordinate {
		return &model.Location{Lat: lat, Lon: lon}, nil
	}

	if profile.HomeLocation == "" {
		return nil, nil
	}

	point, err := uc.geo.Geocode(ctx, profile.HomeLocation)
	if err == nil && point != nil {
		return point, nil
	}
	if err != nil {
		logging.From(ctx).Warn("home location geocoding failed, falling back",
			"location", profile.HomeLocation, "fallback", uc.cfg.FallbackRegion, "error", err)
	}

	point, err = uc.geo.Geocode(ctx, uc.cfg.FallbackRegion)
	if err != nil {
		// Geocoding is best-effort here: with no resolvable point the
		// distance filter rejects everything and the result is empty.
		logging.From(ctx).Warn("fallback region geocoding failed",
			"fallback", uc.cfg.FallbackRegion, "error", err)
		return nil, nil
	}
	return point, nil
}

// affinityTags combines the user's free-text tags with the most frequent
// tags across their historically used applications. Free-text tags come
// first, then affinity tags ranked by frequency with ties kept in encounter
// order.
func (uc *RecommendUseCase) affinityTags(ctx context.Context, profile *model.UserProfile) ([]string, error) {
	count := map[string]int{}
	var order []string
	for _, appID := range profile.UsedAppIDs {
		app, err := uc.repo.Artifact().Get(ctx, appID)
		if err != nil {
			if goerr.HasTag(err, types.ErrTagNotFound) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to load used app", goerr.V("id", appID))
		}
		for _, tag := range app.Tags {
			if _, seen := count[tag]; !seen {
				order = append(order, tag)
			}
			count[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return count[order[i]] > count[order[j]]
	})
	if len(order) > uc.cfg.TopUsedTags {
		order = order[:uc.cfg.TopUsedTags]
	}

	combined := make([]string, 0, len(profile.Tags)+len(order))
	combined = append(combined, profile.Tags...)
	combined = append(combined, order...)
	return combined, nil
}
