package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/opencity-lab/musette/pkg/domain/model/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Recommender holds the CLI flag pointing at the optional tunables file.
// Without a file every tunable keeps its default.
type Recommender struct {
	configPath string
}

// recommenderFile is the TOML shape of the tunables file. Pointers
// distinguish "absent, keep default" from explicit zero values.
type recommenderFile struct {
	MaxEditDistance *int     `toml:"max_edit_distance"`
	MinScore        *float64 `toml:"min_score"`
	TopUsedTags     *int     `toml:"top_used_tags"`
	FallbackRegion  *string  `toml:"fallback_region"`
}

// Flags returns CLI flags for recommender configuration
func (r *Recommender) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "recommender-config",
			Usage:       "Path to TOML file with recommendation tunables",
			Sources:     cli.EnvVars("MUSETTE_RECOMMENDER_CONFIG"),
			Destination: &r.configPath,
		},
	}
}

// Configure loads and validates the recommendation tunables
func (r *Recommender) Configure() (*domainConfig.RecommendConfig, error) {
	cfg := domainConfig.NewRecommendConfig()
	if r.configPath == "" {
		return cfg, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(r.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "recommender config missing", goerr.V("path", r.configPath))
		}
		return nil, goerr.Wrap(err, "failed to read recommender config", goerr.V("path", r.configPath))
	}

	var file recommenderFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", r.configPath))
	}

	if file.MaxEditDistance != nil {
		cfg.MaxEditDistance = *file.MaxEditDistance
	}
	if file.MinScore != nil {
		cfg.MinScore = *file.MinScore
	}
	if file.TopUsedTags != nil {
		cfg.TopUsedTags = *file.TopUsedTags
	}
	if file.FallbackRegion != nil {
		cfg.FallbackRegion = *file.FallbackRegion
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "recommender config validation failed",
			goerr.V("path", r.configPath), goerr.V("error", err.Error()))
	}
	return cfg, nil
}
