package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecamp-kr/qna-assist/internal/hybrid"
)

var (
	extractOCR       bool
	extractForceLLM  bool
	extractThreshold float64
	extractTimeout   time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <question>",
	Short: "Extract search keywords from a question",
	Long: `Extract runs the hybrid keyword pipeline on a single question:
- Local heuristic extraction (tech terms, Korean noun candidates, bigrams)
- Colloquial/typo term mapping (자스 -> JavaScript, vsc -> VSCode)
- Confidence scoring; low-confidence questions escalate to the model
- OCR-style text always escalates

The result is printed as JSON with keywords, source, confidence, and cost.

Example:
  qna-assist extract "리액트 useState가 작동 안해요"
  qna-assist extract --ocr "$(cat screenshot.txt)"
  qna-assist extract --force-llm "npm install 에러"`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractOCR, "ocr", false, "treat input as OCR-extracted text (always uses the model)")
	extractCmd.Flags().BoolVar(&extractForceLLM, "force-llm", false, "skip the confidence check and always use the model")
	extractCmd.Flags().Float64Var(&extractThreshold, "threshold", 0, "confidence threshold for model escalation (default from config)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", time.Minute, "overall extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := loadConfig()
	threshold := cfg.Extraction.ConfidenceThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = extractThreshold
	}

	orchestrator, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	result := orchestrator.Extract(ctx, question, hybrid.Options{
		ConfidenceThreshold: threshold,
		ForceLLM:            extractForceLLM,
		OCR:                 extractOCR,
	})

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d keywords (source=%s, confidence=%.0f%%, %dms)\n",
			len(result.Keywords), result.Source, result.Confidence*100, result.ProcessingTime)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
