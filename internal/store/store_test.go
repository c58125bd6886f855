package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/codecamp-kr/qna-assist/internal/model"
)

func TestLoad_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if records != nil {
		t.Errorf("Expected nil records, got %v", records)
	}
}

func TestAppend_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "qna.json")
	s := New(path)

	first := model.QnARecord{
		ID:        "qna-001",
		Category:  "Front-end",
		Title:     "useState 질문",
		Body:      "본문",
		Keywords:  []string{"React", "useState"},
		Answer:    "답변",
		Author:    "익명",
		Timestamp: time.Now().UTC(),
	}
	if err := s.Append(first); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second := first
	second.ID = "qna-002"
	second.Title = "flexbox 질문"
	if err := s.Append(second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "qna-001" || records[1].ID != "qna-002" {
		t.Errorf("Expected insertion order preserved, got %s then %s", records[0].ID, records[1].ID)
	}
	if records[0].Title != "useState 질문" {
		t.Errorf("Expected title preserved, got %q", records[0].Title)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name    string
		records []model.QnARecord
		want    string
	}{
		{"empty", nil, "qna-001"},
		{"sequential", []model.QnARecord{{ID: "qna-001"}, {ID: "qna-002"}}, "qna-003"},
		{"gap", []model.QnARecord{{ID: "qna-001"}, {ID: "qna-042"}}, "qna-043"},
		{"four digits", []model.QnARecord{{ID: "qna-0999"}}, "qna-1000"},
		{"unparseable ignored", []model.QnARecord{{ID: "legacy"}, {ID: "qna-007"}}, "qna-008"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.records); got != tt.want {
				t.Errorf("NextID() = %q, want %q", got, tt.want)
			}
		})
	}
}
