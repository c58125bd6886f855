package hybrid

import (
	"context"

	"github.com/codecamp-kr/qna-assist/internal/model"
	"github.com/codecamp-kr/qna-assist/internal/worker"
)

// BatchResult pairs per-question extraction results with aggregate stats.
type BatchResult struct {
	Results []model.ExtractionResult `json:"results"`
	Stats   model.BatchStats         `json:"stats"`
}

// ExtractBatch runs Extract independently over every question, up to
// concurrency at a time. Each extraction shares no state with the others;
// results land at the index of their question regardless of completion
// order.
func (o *Orchestrator) ExtractBatch(ctx context.Context, questions []string, opts Options, concurrency int) BatchResult {
	results := make([]model.ExtractionResult, len(questions))

	pool := worker.NewPool(concurrency)
	pool.Run(ctx, len(questions), func(ctx context.Context, i int) {
		results[i] = o.Extract(ctx, questions[i], opts)
	})

	return BatchResult{
		Results: results,
		Stats:   model.Stats(results),
	}
}
