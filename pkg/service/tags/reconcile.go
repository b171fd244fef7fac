package tags

import "github.com/agnivade/levenshtein"

// Reconcile aligns the target artifact's tag spellings with the source
// artifact's vocabulary. It is used when the source language has no stemmer
// support, so its tags were never canonicalized and informal spellings,
// typos or dialectal variants would otherwise defeat overlap scoring.
//
// For each target tag the source tags are scanned in order; the first source
// tag within maxDistance edits wins and its spelling replaces the target's.
// A target tag with no close source tag keeps its own spelling. Every
// element of the result is therefore a member of either sourceTags or
// targetTags, never a third-party string.
//
// sourceTags must be a deterministic sequence, not a hash-ordered set: its
// iteration order decides which match wins on distance-2 collisions.
func Reconcile(sourceTags, targetTags []string, maxDistance int) map[string]struct{} {
	reconciled := make(map[string]struct{}, len(targetTags))
	for _, target := range targetTags {
		matched := false
		for _, source := range sourceTags {
			if levenshtein.ComputeDistance(target, source) <= maxDistance {
				reconciled[source] = struct{}{}
				matched = true
				break
			}
		}
		if !matched {
			reconciled[target] = struct{}{}
		}
	}
	return reconciled
}
