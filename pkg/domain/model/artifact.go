package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

// Artifact is a recommendable entity: a dataset, a reusable building block,
// an application or an idea. The kind is fixed at creation time. Tags are
// stored denormalized as a deduplicated label list; many artifacts may carry
// the same label.
type Artifact struct {
	ID   types.ArtifactID
	Kind types.ArtifactKind
	Lang string
	Tags []string

	// Application only: the place name the app is associated with, and the
	// minimum user age required to get it recommended (0 = no gate).
	Scope  string
	MinAge int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the artifact invariants for a create or update
func (x *Artifact) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid artifact")
	}
	if !x.Kind.IsValid() {
		return goerr.New("invalid artifact kind", goerr.V("kind", x.Kind), goerr.T(types.ErrTagBadRequest))
	}
	if x.Lang == "" {
		return goerr.New("artifact language is required", goerr.V("id", x.ID), goerr.T(types.ErrTagBadRequest))
	}
	if x.MinAge < 0 {
		return goerr.New("minimum age must not be negative", goerr.V("id", x.ID), goerr.V("minAge", x.MinAge), goerr.T(types.ErrTagBadRequest))
	}
	if x.Kind != types.KindApplication && (x.Scope != "" || x.MinAge != 0) {
		return goerr.New("scope and minimum age are application-only fields", goerr.V("id", x.ID), goerr.V("kind", x.Kind), goerr.T(types.ErrTagBadRequest))
	}
	return nil
}

// NormalizeTags collapses duplicate tag labels, keeping first-seen order.
// Order is preserved so that downstream first-match policies stay
// reproducible.
func (x *Artifact) NormalizeTags() {
	x.Tags = DedupTags(x.Tags)
}

// TagSet returns the artifact's tags as a membership set
func (x *Artifact) TagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(x.Tags))
	for _, tag := range x.Tags {
		set[tag] = struct{}{}
	}
	return set
}

// HasSameTags reports whether the artifact's tag set equals the given list,
// ignoring order and duplicates
func (x *Artifact) HasSameTags(tags []string) bool {
	a := x.TagSet()
	deduped := DedupTags(tags)
	if len(a) != len(deduped) {
		return false
	}
	for _, tag := range deduped {
		if _, ok := a[tag]; !ok {
			return false
		}
	}
	return true
}

// DedupTags removes duplicate labels from a tag list, preserving the first
// occurrence order
func DedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
