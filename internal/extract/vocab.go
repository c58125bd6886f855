package extract

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/vocab.yaml
var vocabYAML []byte

// Vocabulary holds the declarative heuristic tables the extractor runs on.
// The zero value is unusable; load the defaults with DefaultVocabulary or
// build a minimal fixture in tests.
type Vocabulary struct {
	// TechTerms lists canonical spellings of known technology terms.
	TechTerms []string `yaml:"tech_terms"`

	// StopWords are tokens rejected as keywords.
	StopWords []string `yaml:"stop_words"`

	// Particles are Hangul grammatical suffixes stripped from token tails.
	Particles []string `yaml:"particles"`

	// PredicatePrefixes mark Hangul verb/adjective fragments to reject.
	PredicatePrefixes []string `yaml:"predicate_prefixes"`

	termByLower map[string]string
	stopSet     map[string]bool
}

// DefaultVocabulary loads the embedded tables.
func DefaultVocabulary() (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(vocabYAML, &v); err != nil {
		return nil, fmt.Errorf("parse embedded vocabulary: %w", err)
	}
	v.index()
	return &v, nil
}

// MustDefaultVocabulary is DefaultVocabulary for callers that treat a broken
// embedded table as a programming error.
func MustDefaultVocabulary() *Vocabulary {
	v, err := DefaultVocabulary()
	if err != nil {
		panic(err)
	}
	return v
}

// NewVocabulary builds a vocabulary from explicit tables (test fixtures).
func NewVocabulary(techTerms, stopWords, particles, predicatePrefixes []string) *Vocabulary {
	v := &Vocabulary{
		TechTerms:         techTerms,
		StopWords:         stopWords,
		Particles:         particles,
		PredicatePrefixes: predicatePrefixes,
	}
	v.index()
	return v
}

func (v *Vocabulary) index() {
	v.termByLower = make(map[string]string, len(v.TechTerms))
	for _, term := range v.TechTerms {
		lower := strings.ToLower(term)
		// First declaration wins so a token matches at most one entry.
		if _, ok := v.termByLower[lower]; !ok {
			v.termByLower[lower] = term
		}
	}

	v.stopSet = make(map[string]bool, len(v.StopWords))
	for _, w := range v.StopWords {
		v.stopSet[w] = true
	}
}

// CanonicalTerm returns the canonical spelling for a token matching a known
// technology term, case-insensitively.
func (v *Vocabulary) CanonicalTerm(token string) (string, bool) {
	term, ok := v.termByLower[strings.ToLower(token)]
	return term, ok
}

// IsStopWord reports whether the token is in the stop-word set.
func (v *Vocabulary) IsStopWord(token string) bool {
	return v.stopSet[token]
}
