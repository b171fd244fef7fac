package tags

// Similarity computes the Jaccard index of two tag sets: intersection size
// over union size, in [0,1]. Two empty sets have an empty union; the score
// is defined as 0 in that case rather than an error or NaN.
func Similarity(a, b map[string]struct{}) float64 {
	intersection := 0
	for tag := range a {
		if _, ok := b[tag]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Set builds a membership set from a tag list, collapsing duplicates
func Set(tagNames []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tagNames))
	for _, tag := range tagNames {
		set[tag] = struct{}{}
	}
	return set
}
