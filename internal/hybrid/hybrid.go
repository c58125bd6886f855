// Package hybrid decides, per request, whether local keyword extraction is
// trustworthy enough to use directly or whether the external model should
// be asked instead. Local is free and fast; the model costs money and
// latency, so it only runs when confidence is low, the caller forces it,
// or the text is OCR-derived.
package hybrid

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codecamp-kr/qna-assist/internal/extract"
	"github.com/codecamp-kr/qna-assist/internal/llm"
	"github.com/codecamp-kr/qna-assist/internal/mapping"
	"github.com/codecamp-kr/qna-assist/internal/model"
)

// llmCostPerRequest is the rough per-call cost reported on LLM results.
const llmCostPerRequest = 0.0001

// Options controls one hybrid extraction.
type Options struct {
	// ConfidenceThreshold is the minimum local confidence that skips the
	// external model. Zero means the default of 0.7.
	ConfidenceThreshold float64

	// ForceLLM always routes to the external model.
	ForceLLM bool

	// OCR marks the input as OCR-derived. OCR text is never trusted to
	// local extraction and always routes to the external model.
	OCR bool
}

// Orchestrator runs the local-first, LLM-escalation extraction policy.
// It carries no per-request state and is safe for concurrent use.
type Orchestrator struct {
	extractor *extract.Extractor
	table     *mapping.Table
	provider  llm.Provider
	verbose   bool
}

// New builds an orchestrator. provider may be nil, in which case every
// escalation falls back to the merged local result.
func New(extractor *extract.Extractor, table *mapping.Table, provider llm.Provider) *Orchestrator {
	return &Orchestrator{extractor: extractor, table: table, provider: provider}
}

// SetVerbose enables progress output on stderr.
func (o *Orchestrator) SetVerbose(v bool) {
	o.verbose = v
}

// Extract runs the hybrid pipeline on one question. It never returns an
// error: bad input yields a SourceNone result and external failures fold
// into SourceLocalFallback.
func (o *Orchestrator) Extract(ctx context.Context, question string, opts Options) model.ExtractionResult {
	start := time.Now()

	threshold := opts.ConfidenceThreshold
	if threshold == 0 {
		threshold = 0.7
	}

	if strings.TrimSpace(question) == "" {
		return model.ExtractionResult{
			Keywords:   []string{},
			Source:     model.SourceNone,
			Confidence: 0,
		}
	}

	isOCR := opts.OCR
	if !isOCR && LooksLikeOCR(question) {
		isOCR = true
		o.logf("OCR-looking text detected, tightening extraction")
	}

	// Local pass on the raw question.
	localKeywords := o.extractor.Extract(question, extract.Options{OCR: isOCR})

	// Mapped pass: rewrite colloquial/misspelled terms, re-extract, then
	// standardize each keyword.
	mappedQuestion := o.table.Apply(question)
	mappedKeywords := o.extractor.Extract(mappedQuestion, extract.Options{OCR: isOCR})
	for i, k := range mappedKeywords {
		mappedKeywords[i] = o.table.StandardTerm(k)
	}

	maxCombined := 25
	if isOCR {
		maxCombined = 15
	}
	combined := mergeKeywords(localKeywords, mappedKeywords, maxCombined)

	confidence := Confidence(combined)
	o.logf("local confidence %.0f%% over %d keywords", confidence*100, len(combined))

	forceExternal := opts.ForceLLM || isOCR
	if !forceExternal && confidence >= threshold {
		return model.ExtractionResult{
			Keywords:       combined,
			Source:         model.SourceLocal,
			Confidence:     confidence,
			ProcessingTime: time.Since(start).Milliseconds(),
			MappingApplied: mappedQuestion != question,
		}
	}

	// Escalate with the original, unmapped question: the model does its
	// own term correction and mapping would only hide the user's wording.
	response, err := o.callProvider(ctx, question)
	elapsed := time.Since(start).Milliseconds()

	if err == nil && len(response.Keywords) > 0 {
		o.logf("external model returned %d keywords", len(response.Keywords))
		return model.ExtractionResult{
			Keywords:       response.Keywords,
			Category:       response.Category,
			CorrectedTerms: response.CorrectedTerms,
			Source:         model.SourceLLM,
			Confidence:     confidence,
			Cost:           llmCostPerRequest,
			ProcessingTime: elapsed,
			Model:          response.Model,
			Usage:          response.Usage,
		}
	}

	reason := "LLM unavailable or failed"
	if err != nil {
		o.logf("external model failed: %v", err)
	} else {
		o.logf("external model returned no keywords")
	}

	return model.ExtractionResult{
		Keywords:       combined,
		Source:         model.SourceLocalFallback,
		Confidence:     confidence,
		ProcessingTime: elapsed,
		FallbackReason: reason,
	}
}

func (o *Orchestrator) callProvider(ctx context.Context, question string) (*llm.Response, error) {
	if o.provider == nil {
		return nil, fmt.Errorf("no external provider configured")
	}
	return o.provider.ExtractKeywords(ctx, question)
}

// mergeKeywords unions the two lists preserving first-seen order, capped.
func mergeKeywords(local, mapped []string, maxCount int) []string {
	seen := make(map[string]bool, len(local)+len(mapped))
	merged := make([]string, 0, len(local)+len(mapped))

	for _, list := range [][]string{local, mapped} {
		for _, k := range list {
			if !seen[k] {
				seen[k] = true
				merged = append(merged, k)
			}
		}
	}

	if len(merged) > maxCount {
		merged = merged[:maxCount]
	}
	return merged
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, "[hybrid] "+format+"\n", args...)
	}
}
