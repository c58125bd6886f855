// Package store persists Q&A records as a single flat JSON document, the
// same format the record file is seeded and inspected with by hand. The
// collection is append-only: records are never updated or deleted.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/codecamp-kr/qna-assist/internal/model"
)

type database struct {
	QnAList []model.QnARecord `json:"qnaList"`
}

// Store reads and appends records in a JSON file.
type Store struct {
	path string
}

// New creates a store over the given file path. The file may not exist
// yet; Load treats that as an empty collection.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record, in insertion order.
func (s *Store) Load() ([]model.QnARecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read record store: %w", err)
	}

	var db database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse record store %s: %w", s.path, err)
	}
	return db.QnAList, nil
}

// Append adds one record to the end of the collection and rewrites the
// file. Single-writer by contract; there is no concurrency control here.
func (s *Store) Append(record model.QnARecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(database{QnAList: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write record store: %w", err)
	}
	return nil
}

var idNumberRe = regexp.MustCompile(`qna-(\d+)`)

// NextID returns the next record id: max existing numeric suffix plus one,
// zero-padded to three digits ("qna-001", "qna-042", "qna-1000").
func NextID(records []model.QnARecord) string {
	maxID := 0
	for _, r := range records {
		if m := idNumberRe.FindStringSubmatch(r.ID); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	return fmt.Sprintf("qna-%03d", maxID+1)
}
