package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codecamp-kr/qna-assist/internal/hybrid"
	"github.com/codecamp-kr/qna-assist/internal/model"
	"github.com/codecamp-kr/qna-assist/internal/qna"
	"github.com/codecamp-kr/qna-assist/internal/store"
)

var (
	addAnswer    string
	addCategory  string
	addAuthor    string
	addOCRFile   string
	addImageURL  string
	addStorePath string
	addTimeout   time.Duration
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <question>",
	Short: "Add an answered question to the archive",
	Long: `Add extracts keywords from the question (plus OCR text if supplied),
derives a title and tags, assigns the next record id, and appends the
record to the JSON archive.

Example:
  qna-assist add "useState가 비동기인가요?" --answer "네, 배치 처리됩니다" --category Front-end
  qna-assist add "npm 설치 에러" --answer "캐시를 지우세요" --category Node --ocr-text error.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addAnswer, "answer", "", "the answer text (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "record category (required): "+categoryList())
	addCmd.Flags().StringVar(&addAuthor, "author", "", "author name (default: 익명)")
	addCmd.Flags().StringVar(&addOCRFile, "ocr-text", "", "file with OCR text from an attached screenshot")
	addCmd.Flags().StringVar(&addImageURL, "image-url", "", "URL of an attached screenshot")
	addCmd.Flags().StringVar(&addStorePath, "store", "", "record store path (default from config)")
	addCmd.Flags().DurationVar(&addTimeout, "timeout", time.Minute, "overall timeout")

	_ = addCmd.MarkFlagRequired("answer")
	_ = addCmd.MarkFlagRequired("category")
}

func runAdd(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), addTimeout)
	defer cancel()

	cfg := loadConfig()
	storePath := cfg.Store.Path
	if addStorePath != "" {
		storePath = addStorePath
	}

	ocrText := ""
	if addOCRFile != "" {
		data, err := os.ReadFile(addOCRFile)
		if err != nil {
			return fmt.Errorf("read OCR text file: %w", err)
		}
		ocrText = string(data)
	}

	orchestrator, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	// Keywords come from the question plus any OCR text so screenshot-only
	// records are still findable.
	extractInput := question
	if ocrText != "" {
		extractInput = question + "\n" + ocrText
	}
	extraction := orchestrator.Extract(ctx, extractInput, hybrid.Options{
		ConfidenceThreshold: cfg.Extraction.ConfidenceThreshold,
		OCR:                 ocrText != "",
	})
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d keywords (source=%s)\n", len(extraction.Keywords), extraction.Source)
	}

	s := store.New(storePath)
	existing, err := s.Load()
	if err != nil {
		return err
	}

	record, err := qna.Build(existing, qna.Input{
		Question: question,
		Answer:   addAnswer,
		Category: addCategory,
		Author:   addAuthor,
		Keywords: extraction.Keywords,
		OCRText:  ocrText,
		ImageURL: addImageURL,
	})
	if err != nil {
		return err
	}

	if err := s.Append(record); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Added %s: %s\n", record.ID, record.Title)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func categoryList() string {
	list := ""
	for i, c := range model.Categories {
		if i > 0 {
			list += ", "
		}
		list += c
	}
	return list
}
