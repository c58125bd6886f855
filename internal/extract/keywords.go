// Package extract implements local keyword extraction: markup cleanup,
// technical-term matching, noun-candidate and bigram generation, and the
// similarity primitives the retrieval scorer builds on. Everything here is
// pure and deterministic; the heuristic tables live in data/vocab.yaml.
package extract

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Options controls a single extraction pass.
type Options struct {
	// MaxKeywords caps the result. Zero means the default of 20.
	MaxKeywords int

	// OCR tightens every cap: OCR-derived text is noisy and over-produces
	// low-value tokens.
	OCR bool
}

// Extractor turns free-form question text into a ranked keyword list.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor builds an extractor on the embedded vocabulary.
func NewExtractor() *Extractor {
	return &Extractor{vocab: MustDefaultVocabulary()}
}

// NewExtractorWithVocabulary builds an extractor on explicit tables.
func NewExtractorWithVocabulary(v *Vocabulary) *Extractor {
	return &Extractor{vocab: v}
}

// Extract produces a deduplicated, size-capped keyword list for the text.
//
// Technical terms are matched on the cleaned text before normalization so
// canonical casing survives; they sort ahead of everything else, then
// shorter keywords win (shorter reads as more specific here). Empty input
// yields an empty list.
func (e *Extractor) Extract(text string, opts Options) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	maxKeywords := opts.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = 20
	}
	effectiveMax := maxKeywords
	maxNouns := 15
	maxBigrams := 10
	if opts.OCR {
		if effectiveMax > 15 {
			effectiveMax = 15
		}
		maxNouns = 8
		maxBigrams = 5
	}

	cleaned := CleanMarkup(text)

	techTerms := e.MatchTerms(cleaned)

	normalized := Normalize(cleaned)
	nouns := e.CandidateTokens(normalized)
	if len(nouns) > maxNouns {
		nouns = nouns[:maxNouns]
	}

	var bigrams []string
	if !opts.OCR || len(techTerms) < 5 {
		bigrams = e.Bigrams(normalized, maxBigrams)
	}

	keywords := dedupe(techTerms, nouns, bigrams)

	techSet := make(map[string]bool, len(techTerms))
	for _, t := range techTerms {
		techSet[t] = true
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		iTech, jTech := techSet[keywords[i]], techSet[keywords[j]]
		if iTech != jTech {
			return iTech
		}
		return utf8.RuneCountInString(keywords[i]) < utf8.RuneCountInString(keywords[j])
	})

	if len(keywords) > effectiveMax {
		keywords = keywords[:effectiveMax]
	}
	return keywords
}

func dedupe(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, kw := range group {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

// Similarity is the case-insensitive Jaccard similarity of two keyword
// sets. Either side empty scores 0.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := lowerSet(a)
	setB := lowerSet(b)

	intersection := 0
	for k := range setA {
		if setB[k] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func lowerSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[strings.ToLower(k)] = true
	}
	return set
}

// CountMatches scores how many keywords appear in the text. An exact
// substring hit in the normalized text counts 1; otherwise a bidirectional
// partial match against any whitespace-delimited word counts 0.5 for
// keywords of at least 2 runes. Fractional totals are meaningful to the
// retrieval scorer.
func CountMatches(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	normalized := Normalize(CleanMarkup(text))
	words := strings.Fields(normalized)

	var count float64
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)

		if strings.Contains(normalized, kw) {
			count++
			continue
		}
		if utf8.RuneCountInString(kw) < 2 {
			continue
		}
		for _, word := range words {
			if strings.Contains(word, kw) || strings.Contains(kw, word) {
				count += 0.5
				break
			}
		}
	}

	return count
}
