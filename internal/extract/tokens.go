package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	numericOnlyRe = regexp.MustCompile(`^\d+$`)
	hexHashRe     = regexp.MustCompile(`(?i)^[a-f0-9]{10,}$`)
	hangulOnlyRe  = regexp.MustCompile(`^[\x{AC00}-\x{D7A3}]+$`)
	latinOnlyRe   = regexp.MustCompile(`^[a-zA-Z]+$`)

	numericPhraseRe = regexp.MustCompile(`^[\d\s]+$`)
	latinWordRe     = regexp.MustCompile(`^[a-zA-Z]{3,}$`)
	upperStartRe    = regexp.MustCompile(`^[A-Z]`)
)

// CandidateTokens extracts noun-like tokens from normalized text.
//
// Hangul tokens lose a trailing grammatical particle (longest matching
// suffix) and the residual must be at least 2 runes and not a stop word;
// tokens that start like a verb/adjective conjugation are rejected as
// predicate fragments. Latin tokens must be at least 3 letters. Purely
// numeric tokens and long hex hashes are rejected outright.
func (e *Extractor) CandidateTokens(normalizedText string) []string {
	var nouns []string

	for _, word := range strings.Fields(normalizedText) {
		if numericOnlyRe.MatchString(word) || hexHashRe.MatchString(word) {
			continue
		}

		switch {
		case hangulOnlyRe.MatchString(word):
			if e.isPredicateFragment(word) {
				continue
			}
			base := e.stripParticle(word)
			if utf8.RuneCountInString(base) >= 2 && !e.vocab.IsStopWord(base) {
				nouns = append(nouns, base)
			}
		case latinOnlyRe.MatchString(word):
			if len(word) >= 3 && !e.vocab.IsStopWord(word) {
				nouns = append(nouns, word)
			}
		}
	}

	return nouns
}

// stripParticle removes the longest vocabulary particle that suffixes the
// word. Longest-match keeps "에서" from being trimmed as a bare "서".
func (e *Extractor) stripParticle(word string) string {
	longest := ""
	for _, p := range e.vocab.Particles {
		if len(p) > len(longest) && strings.HasSuffix(word, p) {
			longest = p
		}
	}
	return strings.TrimSuffix(word, longest)
}

func (e *Extractor) isPredicateFragment(word string) bool {
	for _, prefix := range e.vocab.PredicatePrefixes {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}

// Bigrams slides a 2-token window over the normalized text and keeps
// phrases that look technical. A window is rejected when any token is
// numeric, a hex hash, or a stop word; when the joined phrase is outside
// 4..30 runes or purely numeric; or when no token is a plausible technical
// term (>=3 Latin letters, or uppercase-initial). At most maxCount phrases
// are returned, in scan order.
func (e *Extractor) Bigrams(normalizedText string, maxCount int) []string {
	words := strings.Fields(normalizedText)
	var ngrams []string

	for i := 0; i+1 < len(words); i++ {
		if len(ngrams) >= maxCount {
			break
		}
		pair := words[i : i+2]

		if e.rejectWindow(pair) {
			continue
		}

		phrase := strings.Join(pair, " ")
		length := utf8.RuneCountInString(phrase)
		if length < 4 || length > 30 {
			continue
		}
		if numericPhraseRe.MatchString(phrase) {
			continue
		}
		if !plausibleTechWindow(pair) {
			continue
		}

		ngrams = append(ngrams, phrase)
	}

	return ngrams
}

func (e *Extractor) rejectWindow(pair []string) bool {
	for _, word := range pair {
		if numericOnlyRe.MatchString(word) || hexHashRe.MatchString(word) {
			return true
		}
		if e.vocab.IsStopWord(word) {
			return true
		}
	}
	return false
}

// plausibleTechWindow suppresses conversational n-grams: at least one token
// must look like it could be a technical term.
func plausibleTechWindow(pair []string) bool {
	for _, word := range pair {
		if latinWordRe.MatchString(word) || upperStartRe.MatchString(word) {
			return true
		}
	}
	return false
}
