package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecamp-kr/qna-assist/internal/hybrid"
)

var (
	batchConcurrency int
	batchForceLLM    bool
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract keywords for many questions in parallel",
	Long: `Batch reads questions from a file (one per line, blank lines skipped)
and runs the hybrid extraction pipeline over them concurrently. Results
keep the input order and come with aggregate stats: per-source counts,
total cost, and average confidence.

Example:
  qna-assist batch questions.txt
  qna-assist batch questions.txt --concurrency 8
  qna-assist batch questions.txt --force-llm`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent extractions (default from config)")
	batchCmd.Flags().BoolVar(&batchForceLLM, "force-llm", false, "skip the confidence check and always use the model")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	concurrency := cfg.Batch.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = batchConcurrency
	}

	questions, err := readQuestions(file)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions in %s", file)
	}

	orchestrator, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Extracting keywords for %d questions with %d workers...\n", len(questions), concurrency)

	result := orchestrator.ExtractBatch(ctx, questions, hybrid.Options{
		ConfidenceThreshold: cfg.Extraction.ConfidenceThreshold,
		ForceLLM:            batchForceLLM,
	}, concurrency)

	fmt.Fprintf(os.Stderr, "✓ Done: %d local, %d model, %d fallback (total cost $%.4f)\n",
		result.Stats.Local, result.Stats.LLM, result.Stats.Fallback, result.Stats.TotalCost)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	return questions, nil
}
