package model

// Source identifies which path produced an extraction result.
type Source string

const (
	// SourceLocal means the merged local/mapped extraction was confident
	// enough to use directly.
	SourceLocal Source = "local"

	// SourceLLM means the external model produced the keywords.
	SourceLLM Source = "llm"

	// SourceLocalFallback means the external model was tried and failed,
	// and the merged local result was used instead.
	SourceLocalFallback Source = "local_fallback"

	// SourceFallback means extraction produced nothing and the search
	// orchestrator fell back to naive word splitting.
	SourceFallback Source = "fallback"

	// SourceNone means the input was empty or invalid.
	SourceNone Source = "none"
)

// ExtractionResult is the outcome of one hybrid keyword extraction.
//
// Confidence always reports the local pass's score, even when Source is
// SourceLLM: it records why the external call was triggered, not the
// quality of the external output.
type ExtractionResult struct {
	Keywords       []string          `json:"keywords"`
	Source         Source            `json:"source"`
	Confidence     float64           `json:"confidence"`     // 0..1
	Cost           float64           `json:"cost"`           // USD, 0 for local paths
	ProcessingTime int64             `json:"processingTime"` // milliseconds
	Category       string            `json:"category,omitempty"`
	CorrectedTerms map[string]string `json:"correctedTerms,omitempty"`
	Model          string            `json:"model,omitempty"`
	Usage          *TokenUsage       `json:"usage,omitempty"`
	MappingApplied bool              `json:"mappingApplied,omitempty"`
	FallbackReason string            `json:"fallbackReason,omitempty"`
}

// TokenUsage mirrors the token accounting returned by the external model.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// BatchStats aggregates a batch of extraction results.
type BatchStats struct {
	Total         int     `json:"total"`
	Local         int     `json:"local"`
	LLM           int     `json:"llm"`
	Fallback      int     `json:"fallback"`
	TotalCost     float64 `json:"totalCost"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// Stats computes batch statistics over a slice of extraction results.
func Stats(results []ExtractionResult) BatchStats {
	stats := BatchStats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	var confidenceSum float64
	for _, r := range results {
		switch r.Source {
		case SourceLocal:
			stats.Local++
		case SourceLLM:
			stats.LLM++
		case SourceLocalFallback:
			stats.Fallback++
		}
		stats.TotalCost += r.Cost
		confidenceSum += r.Confidence
	}
	stats.AvgConfidence = confidenceSum / float64(len(results))

	return stats
}
