// Package mapping rewrites colloquial and misspelled technology terms into
// their canonical spellings. The tables are data (data/mappings.yaml); the
// two replacement phases and their ordering are the contract.
package mapping

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/mappings.yaml
var mappingsYAML []byte

// Entry is one rewrite rule.
type Entry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type tables struct {
	Colloquial []Entry `yaml:"colloquial"`
	Typo       []Entry `yaml:"typo"`
}

// Table applies the two-phase term mapping. Phase order (colloquial before
// typo) and entry order within each phase follow the table declaration;
// later entries may rewrite earlier entries' output, which is accepted
// behavior.
type Table struct {
	colloquial []compiledEntry
	typo       []compiledEntry
	entries    tables
}

type compiledEntry struct {
	re *regexp.Regexp
	to string
}

// Default loads the embedded mapping tables.
func Default() (*Table, error) {
	var t tables
	if err := yaml.Unmarshal(mappingsYAML, &t); err != nil {
		return nil, fmt.Errorf("parse embedded mappings: %w", err)
	}
	return New(t.Colloquial, t.Typo)
}

// MustDefault is Default for callers that treat broken embedded tables as a
// programming error.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a table from explicit entries (test fixtures).
func New(colloquial, typo []Entry) (*Table, error) {
	t := &Table{entries: tables{Colloquial: colloquial, Typo: typo}}

	for _, e := range colloquial {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(e.From))
		if err != nil {
			return nil, fmt.Errorf("compile colloquial entry %q: %w", e.From, err)
		}
		t.colloquial = append(t.colloquial, compiledEntry{re: re, to: e.To})
	}
	for _, e := range typo {
		// Whole-word only. \b is an ASCII word boundary, so entries whose
		// key ends in Hangul never fire; kept as data for parity with the
		// colloquial phase that does handle them.
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(e.From) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile typo entry %q: %w", e.From, err)
		}
		t.typo = append(t.typo, compiledEntry{re: re, to: e.To})
	}

	return t, nil
}

// Apply rewrites the text through both phases and returns the result.
func (t *Table) Apply(text string) string {
	if text == "" {
		return text
	}

	for _, e := range t.colloquial {
		text = e.re.ReplaceAllLiteralString(text, e.to)
	}
	for _, e := range t.typo {
		text = e.re.ReplaceAllLiteralString(text, e.to)
	}

	return text
}

// StandardTerm looks the term up case-insensitively across both tables,
// colloquial first, and returns the canonical form; unknown terms come back
// unchanged.
func (t *Table) StandardTerm(term string) string {
	lower := strings.ToLower(term)

	for _, e := range t.entries.Colloquial {
		if strings.ToLower(e.From) == lower {
			return e.To
		}
	}
	for _, e := range t.entries.Typo {
		if strings.ToLower(e.From) == lower {
			return e.To
		}
	}

	return term
}
