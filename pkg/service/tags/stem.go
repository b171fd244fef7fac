// Package tags implements the tag-set computations the recommender is built
// on: language-aware stemming, edit-distance reconciliation of tag
// vocabularies, and Jaccard overlap scoring.
package tags

import (
	"strings"

	"github.com/kljensen/snowball"
)

// snowballLanguages is the fixed set of languages the snowball stemmer
// supports. Artifacts in any other language go through fuzzy reconciliation
// instead of stemming.
var snowballLanguages = []string{
	"english",
	"spanish",
	"french",
	"russian",
	"swedish",
	"norwegian",
	"hungarian",
}

// SupportedLanguages returns the stemmable language set
func SupportedLanguages() []string {
	langs := make([]string, len(snowballLanguages))
	copy(langs, snowballLanguages)
	return langs
}

// IsSupportedLanguage reports whether the language has stemmer support
func IsSupportedLanguage(lang string) bool {
	lang = strings.ToLower(lang)
	for _, l := range snowballLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Stem reduces each tag to its canonical root form for the given language.
// Input order and length are preserved, no dedup, no filtering. When the
// language has no stemmer support the input is returned unchanged.
func Stem(lang string, tagNames []string) []string {
	if !IsSupportedLanguage(lang) {
		return tagNames
	}

	lang = strings.ToLower(lang)
	stemmed := make([]string, 0, len(tagNames))
	for _, tag := range tagNames {
		root, err := snowball.Stem(tag, lang, false)
		if err != nil {
			root = tag
		}
		stemmed = append(stemmed, root)
	}
	return stemmed
}
