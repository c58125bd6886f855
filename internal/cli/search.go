package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecamp-kr/qna-assist/internal/search"
	"github.com/codecamp-kr/qna-assist/internal/store"
)

var (
	searchCategory      string
	searchMaxResults    int
	searchMinSimilarity float64
	searchOCR           bool
	searchStorePath     string
	searchTimeout       time.Duration
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <question>",
	Short: "Find archived answers for a question",
	Long: `Search extracts keywords from the question and scores every archived
record against them. Title matches dominate the score for typed questions;
for OCR-derived queries the records' own OCR text dominates instead.

Only records at or above the similarity floor are returned, best first.

Example:
  qna-assist search "useState 상태가 업데이트 안돼요"
  qna-assist search --category Front-end --max-results 5 "flexbox 정렬"
  qna-assist search --ocr "$(cat screenshot.txt)"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchCategory, "category", "all", "category filter (Front-end, Back-end, Figma, Git/GitHub, Terminal, VSC, Node, 기타, all)")
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "maximum results to return (default from config)")
	searchCmd.Flags().Float64Var(&searchMinSimilarity, "min-similarity", 0, "similarity score floor 0..1 (default from config)")
	searchCmd.Flags().BoolVar(&searchOCR, "ocr", false, "treat the query as OCR-extracted text")
	searchCmd.Flags().StringVar(&searchStorePath, "store", "", "record store path (default from config)")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", time.Minute, "overall search timeout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	cfg := loadConfig()
	storePath := cfg.Store.Path
	if searchStorePath != "" {
		storePath = searchStorePath
	}
	maxResults := cfg.Search.MaxResults
	if cmd.Flags().Changed("max-results") {
		maxResults = searchMaxResults
	}
	minSimilarity := cfg.Search.MinSimilarity
	if cmd.Flags().Changed("min-similarity") {
		minSimilarity = searchMinSimilarity
	}

	records, err := store.New(storePath).Load()
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d records from %s\n", len(records), storePath)
	}

	orchestrator, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	searcher := search.New(orchestrator)
	searcher.SetVerbose(verbose)

	result := searcher.Search(ctx, records, query, search.Options{
		Category:      searchCategory,
		MaxResults:    maxResults,
		MinSimilarity: minSimilarity,
		OCR:           searchOCR,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
