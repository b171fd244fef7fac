package config

import "github.com/m-mizutani/goerr/v2"

// Default tunables of the recommendation pipeline
const (
	DefaultMaxEditDistance = 2
	DefaultMinScore        = 0.0
	DefaultTopUsedTags     = 5
	DefaultFallbackRegion  = "europe"
)

// RecommendConfig carries the tunables of the similarity and app
// recommendation pipelines.
type RecommendConfig struct {
	// MaxEditDistance is the inclusive Levenshtein threshold for fuzzy tag
	// reconciliation of unstemmable languages.
	MaxEditDistance int

	// MinScore is the exclusive Jaccard threshold an application has to
	// beat to survive tag ranking.
	MinScore float64

	// TopUsedTags is how many of the user's most frequent used-app tags
	// join the affinity tag list.
	TopUsedTags int

	// FallbackRegion is geocoded when the user's own home location cannot
	// be resolved.
	FallbackRegion string
}

// NewRecommendConfig returns a config with the default tunables
func NewRecommendConfig() *RecommendConfig {
	return &RecommendConfig{
		MaxEditDistance: DefaultMaxEditDistance,
		MinScore:        DefaultMinScore,
		TopUsedTags:     DefaultTopUsedTags,
		FallbackRegion:  DefaultFallbackRegion,
	}
}

// Validate checks the config invariants
func (c *RecommendConfig) Validate() error {
	if c.MaxEditDistance < 0 {
		return goerr.New("max edit distance must not be negative", goerr.V("value", c.MaxEditDistance))
	}
	if c.MinScore < 0 || c.MinScore >= 1 {
		return goerr.New("minimum score must be in [0,1)", goerr.V("value", c.MinScore))
	}
	if c.TopUsedTags < 0 {
		return goerr.New("top used tags must not be negative", goerr.V("value", c.TopUsedTags))
	}
	if c.FallbackRegion == "" {
		return goerr.New("fallback region is required")
	}
	return nil
}
