// Package search ranks archived Q&A records against a new question. Titles
// are short, curated and precise, so they dominate the text-mode score;
// for image-derived queries the records' own OCR field is the most
// comparable noisy-to-noisy signal and dominates instead.
package search

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/codecamp-kr/qna-assist/internal/extract"
	"github.com/codecamp-kr/qna-assist/internal/hybrid"
	"github.com/codecamp-kr/qna-assist/internal/model"
)

// OCRMarker is inserted by the question form when pasted text came from a
// screenshot. Its presence switches the query to OCR mode.
const OCRMarker = "[이미지에서 추출된 텍스트]"

// Text-mode weights.
const (
	textKeywordWeight = 0.05
	textTitleWeight   = 0.6
	textBodyWeight    = 0.25
	textAnswerWeight  = 0.1
)

// OCR-mode weights.
const (
	ocrFieldWeight  = 0.8
	ocrTitleWeight  = 0.1
	ocrBodyWeight   = 0.05
	ocrAnswerWeight = 0.05
)

// Options controls one search.
type Options struct {
	// Category filters records case-insensitively; empty or "all" keeps
	// everything.
	Category string

	// MaxResults caps the result list. Zero means the default of 3.
	MaxResults int

	// MinSimilarity is the score floor. Zero means the default of 0.15.
	MinSimilarity float64

	// OCR marks the query as OCR-derived.
	OCR bool
}

// ExtractionInfo is the diagnostic half of a search result.
type ExtractionInfo struct {
	Keywords       []string          `json:"keywords"`
	Source         model.Source      `json:"source"`
	Confidence     float64           `json:"confidence"`
	Cost           float64           `json:"cost"`
	ProcessingTime int64             `json:"processingTime"`
	Category       string            `json:"category,omitempty"`
	CorrectedTerms map[string]string `json:"correctedTerms,omitempty"`
}

// Result holds ranked records plus how the query keywords were obtained.
// ExtractionInfo is nil only when the input was empty.
type Result struct {
	Results        []model.ScoredRecord `json:"results"`
	ExtractionInfo *ExtractionInfo      `json:"extractionInfo"`
}

// Searcher is the top-level retrieval entry point.
type Searcher struct {
	orchestrator *hybrid.Orchestrator
	verbose      bool
}

// New builds a searcher over the given extraction orchestrator.
func New(orchestrator *hybrid.Orchestrator) *Searcher {
	return &Searcher{orchestrator: orchestrator}
}

// SetVerbose enables progress output on stderr.
func (s *Searcher) SetVerbose(v bool) {
	s.verbose = v
}

// Search extracts keywords from the query, scores every record in the
// selected category, and returns the top matches above the score floor.
// It never returns an error; degraded extraction is reported through
// ExtractionInfo.Source.
func (s *Searcher) Search(ctx context.Context, records []model.QnARecord, query string, opts Options) Result {
	if len(records) == 0 || strings.TrimSpace(query) == "" {
		return Result{Results: []model.ScoredRecord{}}
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	minSimilarity := opts.MinSimilarity
	if minSimilarity == 0 {
		minSimilarity = 0.15
	}

	isOCR := opts.OCR
	if !isOCR && strings.Contains(query, OCRMarker) {
		isOCR = true
		s.logf("OCR marker detected in query")
	}

	extraction := s.orchestrator.Extract(ctx, query, hybrid.Options{OCR: isOCR})
	queryKeywords := extraction.Keywords

	// Degenerate extraction: fall back to naive word splitting so the
	// search always has something to match on.
	if len(queryKeywords) == 0 {
		s.logf("no keywords extracted, falling back to word splitting")
		for _, word := range strings.Fields(strings.ToLower(query)) {
			if utf8.RuneCountInString(word) > 1 {
				queryKeywords = append(queryKeywords, word)
			}
		}
		extraction.Keywords = queryKeywords
		extraction.Source = model.SourceFallback
		extraction.Confidence = 0.5
	}

	filtered := records
	if opts.Category != "" && !strings.EqualFold(opts.Category, "all") {
		filtered = nil
		for _, r := range records {
			if strings.EqualFold(r.Category, opts.Category) {
				filtered = append(filtered, r)
			}
		}
	}

	var scored []model.ScoredRecord
	for _, record := range filtered {
		score := scoreRecord(record, queryKeywords, isOCR)
		if score >= minSimilarity {
			scored = append(scored, model.ScoredRecord{QnARecord: record, Score: score})
		}
	}

	// Stable: equal scores keep their original record order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	if scored == nil {
		scored = []model.ScoredRecord{}
	}

	s.logf("%d results for %d keywords (source=%s confidence=%.0f%%)",
		len(scored), len(queryKeywords), extraction.Source, extraction.Confidence*100)

	return Result{
		Results: scored,
		ExtractionInfo: &ExtractionInfo{
			Keywords:       queryKeywords,
			Source:         extraction.Source,
			Confidence:     extraction.Confidence,
			Cost:           extraction.Cost,
			ProcessingTime: extraction.ProcessingTime,
			Category:       extraction.Category,
			CorrectedTerms: extraction.CorrectedTerms,
		},
	}
}

// scoreRecord blends keyword-set similarity with direct per-field match
// counts. k normalizes match counts by the query's keyword count.
func scoreRecord(record model.QnARecord, queryKeywords []string, isOCR bool) float64 {
	k := float64(len(queryKeywords))
	if k < 1 {
		k = 1
	}

	titleMatches := extract.CountMatches(record.Title, queryKeywords)
	bodyMatches := extract.CountMatches(record.Body, queryKeywords)
	answerMatches := extract.CountMatches(record.Answer, queryKeywords)

	if isOCR {
		ocrMatches := extract.CountMatches(record.OCRText, queryKeywords)
		return ocrFieldWeight*(ocrMatches/k) +
			ocrTitleWeight*(titleMatches/k) +
			ocrBodyWeight*(bodyMatches/k) +
			ocrAnswerWeight*(answerMatches/k)
	}

	keywordSimilarity := extract.Similarity(queryKeywords, record.Keywords)
	return textKeywordWeight*keywordSimilarity +
		textTitleWeight*(titleMatches/k) +
		textBodyWeight*(bodyMatches/k) +
		textAnswerWeight*(answerMatches/k)
}

func (s *Searcher) logf(format string, args ...interface{}) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, "[search] "+format+"\n", args...)
	}
}
