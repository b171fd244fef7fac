package usecase

import (
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model/config"
)

type UseCases struct {
	repo    interfaces.Repository
	cfg     *config.RecommendConfig
	geo     interfaces.Geocoder
	profile interfaces.ProfileService
	queue   interfaces.TaskQueue

	Artifact   *ArtifactUseCase
	Similarity *SimilarityUseCase
	Recommend  *RecommendUseCase
}

type Option func(*UseCases)

func WithConfig(cfg *config.RecommendConfig) Option {
	return func(uc *UseCases) {
		uc.cfg = cfg
	}
}

func WithGeocoder(geo interfaces.Geocoder) Option {
	return func(uc *UseCases) {
		uc.geo = geo
	}
}

func WithProfileService(profile interfaces.ProfileService) Option {
	return func(uc *UseCases) {
		uc.profile = profile
	}
}

func WithTaskQueue(queue interfaces.TaskQueue) Option {
	return func(uc *UseCases) {
		uc.queue = queue
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		cfg:  config.NewRecommendConfig(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Similarity = NewSimilarityUseCase(repo, uc.cfg)
	uc.Artifact = NewArtifactUseCase(repo, uc.Similarity, uc.queue)
	uc.Recommend = NewRecommendUseCase(repo, uc.cfg, uc.geo, uc.profile)

	return uc
}
