package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecamp-kr/qna-assist/internal/cache"
	"github.com/codecamp-kr/qna-assist/internal/ocr"
)

var (
	ocrModel   string
	ocrTimeout time.Duration
)

// ocrOutput is the printed result of one OCR run.
type ocrOutput struct {
	Text         string `json:"text"`
	FilteredText string `json:"filteredText"`
	Title        string `json:"title"`
	Note         string `json:"note,omitempty"`
	Model        string `json:"model,omitempty"`
	Cached       bool   `json:"cached,omitempty"`
}

// ocrCmd represents the ocr command
var ocrCmd = &cobra.Command{
	Use:   "ocr <image-file>",
	Short: "Extract error text from a screenshot",
	Long: `OCR sends a screenshot to the vision model, filters the transcription
down to error-relevant lines (prompts and command echo removed), and
derives a short title from what remains.

Requires OPENAI_API_KEY. Identical images within the cache TTL reuse
the previous transcription.

Example:
  qna-assist ocr error-screenshot.png
  qna-assist ocr build-failure.jpg --model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringVar(&ocrModel, "model", "", "vision model name (default from config)")
	ocrCmd.Flags().DurationVar(&ocrTimeout, "timeout", 2*time.Minute, "overall OCR timeout")
}

func runOCR(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), ocrTimeout)
	defer cancel()

	cfg := loadConfig()
	if cmd.Flags().Changed("model") {
		cfg.OCR.Model = ocrModel
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	client, err := ocr.NewClient(ocr.Config{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.OCR.Model,
		Timeout:           cfg.OCR.Timeout,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
	}, cache.NewMemory(cfg.OCR.CacheTTL, cfg.OCR.CacheCleanup), cfg.OCR.CacheTTL)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting text from %s (%d bytes)...\n", imagePath, len(imageBytes))
	}

	result, err := client.ExtractText(ctx, imageBytes, mimeTypeFor(imagePath))
	if err != nil {
		return fmt.Errorf("OCR failed: %w", err)
	}

	filtered := ocr.FilterText(result.Text)
	out := ocrOutput{
		Text:         result.Text,
		FilteredText: filtered,
		Title:        ocr.TitleFromFiltered(filtered, 80),
		Note:         result.Note,
		Model:        result.Model,
		Cached:       result.Cached,
	}

	if verbose {
		if result.Note != "" {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", result.Note)
		} else {
			fmt.Fprintf(os.Stderr, "✓ Extracted %d characters\n", len(result.Text))
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
