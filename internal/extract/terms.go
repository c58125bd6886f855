package extract

import (
	"strings"
	"unicode"
)

// MatchTerms splits text on whitespace and matches each token against the
// technology vocabulary, case-insensitively. A token that fails the exact
// match is retried with its trailing Hangul stripped, so "useState를" still
// matches "useState". Matches are emitted with the canonical spelling from
// the vocabulary, in token order, duplicates kept; deduplication happens
// downstream.
func (e *Extractor) MatchTerms(text string) []string {
	var terms []string
	for _, token := range strings.Fields(text) {
		if canonical, ok := e.vocab.CanonicalTerm(token); ok {
			terms = append(terms, canonical)
			continue
		}
		if base := trimTrailingHangul(token); base != token && base != "" {
			if canonical, ok := e.vocab.CanonicalTerm(base); ok {
				terms = append(terms, canonical)
			}
		}
	}
	return terms
}

// trimTrailingHangul removes attached Korean particles from the tail of a
// mixed-script token, e.g. "React에서" becomes "React".
func trimTrailingHangul(token string) string {
	return strings.TrimRightFunc(token, func(r rune) bool {
		return unicode.Is(unicode.Hangul, r)
	})
}
