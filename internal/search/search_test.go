package search

import (
	"context"
	"testing"

	"github.com/codecamp-kr/qna-assist/internal/extract"
	"github.com/codecamp-kr/qna-assist/internal/hybrid"
	"github.com/codecamp-kr/qna-assist/internal/mapping"
	"github.com/codecamp-kr/qna-assist/internal/model"
)

func newTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	table, err := mapping.Default()
	if err != nil {
		t.Fatalf("Expected no error loading mappings, got %v", err)
	}
	return New(hybrid.New(extract.NewExtractor(), table, nil))
}

func testRecords() []model.QnARecord {
	return []model.QnARecord{
		{
			ID:       "qna-001",
			Category: "Front-end",
			Title:    "useState 상태가 업데이트되지 않아요",
			Body:     "React useState를 호출해도 화면이 안 바뀝니다",
			Keywords: []string{"React", "useState", "상태"},
			Answer:   "useState는 비동기적으로 배치 처리됩니다",
		},
		{
			ID:       "qna-002",
			Category: "Front-end",
			Title:    "flexbox 가운데 정렬이 안돼요",
			Body:     "CSS flexbox로 가운데 정렬하는 방법",
			Keywords: []string{"CSS", "flexbox", "정렬"},
			Answer:   "justify-content와 align-items를 쓰세요",
		},
		{
			ID:       "qna-003",
			Category: "Node",
			Title:    "npm install 권한 에러",
			Body:     "npm install 실행하면 EACCES 에러가 납니다",
			Keywords: []string{"npm", "에러", "권한"},
			Answer:   "npm 전역 디렉터리 권한을 수정하세요",
		},
	}
}

func TestSearch_EmptyRecords(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search(context.Background(), nil, "any query", Options{})

	if result.Results == nil || len(result.Results) != 0 {
		t.Errorf("Expected empty non-nil results, got %v", result.Results)
	}
	if result.ExtractionInfo != nil {
		t.Errorf("Expected nil extraction info, got %+v", result.ExtractionInfo)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search(context.Background(), testRecords(), "   ", Options{})

	if len(result.Results) != 0 || result.ExtractionInfo != nil {
		t.Errorf("Expected empty result with nil extraction info, got %+v", result)
	}
}

func TestSearch_TitleMatchRanksFirst(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search(context.Background(), testRecords(), "React useState 상태 문제", Options{})

	if result.ExtractionInfo == nil {
		t.Fatal("Expected extraction info")
	}
	if len(result.Results) == 0 {
		t.Fatal("Expected at least one result")
	}
	if result.Results[0].ID != "qna-001" {
		t.Errorf("Expected the useState record first, got %s", result.Results[0].ID)
	}
}

func TestSearch_MinSimilarityFloor(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search(context.Background(), testRecords(), "React useState 상태 문제", Options{
		MinSimilarity: 0.99,
	})

	if len(result.Results) != 0 {
		t.Errorf("Expected no results above 0.99, got %d", len(result.Results))
	}
	if result.ExtractionInfo == nil {
		t.Error("Expected extraction info even with zero results")
	}
}

func TestSearch_MaxResults(t *testing.T) {
	s := newTestSearcher(t)

	records := testRecords()
	result := s.Search(context.Background(), records, "React useState 상태 문제", Options{
		MaxResults:    1,
		MinSimilarity: 0.01,
	})

	if len(result.Results) > 1 {
		t.Errorf("Expected at most 1 result, got %d", len(result.Results))
	}
}

func TestSearch_TieOrderPreserved(t *testing.T) {
	s := newTestSearcher(t)

	// Two identical records produce identical scores; the original order
	// must survive the sort.
	twin := testRecords()[0]
	first := twin
	first.ID = "qna-010"
	second := twin
	second.ID = "qna-011"

	result := s.Search(context.Background(), []model.QnARecord{first, second}, "React useState 상태 문제", Options{})

	if len(result.Results) != 2 {
		t.Fatalf("Expected both tied records, got %d", len(result.Results))
	}
	if result.Results[0].ID != "qna-010" || result.Results[1].ID != "qna-011" {
		t.Errorf("Expected original order preserved on tie, got %s then %s",
			result.Results[0].ID, result.Results[1].ID)
	}
	if result.Results[0].Score != result.Results[1].Score {
		t.Errorf("Expected identical scores, got %f and %f",
			result.Results[0].Score, result.Results[1].Score)
	}
}

func TestSearch_CategoryFilter(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search(context.Background(), testRecords(), "npm install 권한 에러", Options{
		Category:      "node",
		MinSimilarity: 0.01,
	})

	for _, r := range result.Results {
		if r.Category != "Node" {
			t.Errorf("Expected only Node records, got category %q", r.Category)
		}
	}
	if len(result.Results) == 0 {
		t.Error("Expected the Node record to match")
	}
}

func TestSearch_NaiveFallbackKeywords(t *testing.T) {
	s := newTestSearcher(t)

	// Tokens too short for any extractor path: the search falls back to
	// naive word splitting and re-tags the source.
	result := s.Search(context.Background(), testRecords(), "ok 네", Options{})

	if result.ExtractionInfo == nil {
		t.Fatal("Expected extraction info")
	}
	if result.ExtractionInfo.Source != model.SourceFallback {
		t.Errorf("Expected fallback source, got %s", result.ExtractionInfo.Source)
	}
	if result.ExtractionInfo.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", result.ExtractionInfo.Confidence)
	}
	if len(result.ExtractionInfo.Keywords) != 1 || result.ExtractionInfo.Keywords[0] != "ok" {
		t.Errorf("Expected naive keywords [ok], got %v", result.ExtractionInfo.Keywords)
	}
}

func TestSearch_OCRMarkerSwitchesWeights(t *testing.T) {
	s := newTestSearcher(t)

	records := []model.QnARecord{{
		ID:       "qna-020",
		Category: "Node",
		Title:    "제목 없음",
		Body:     "본문 없음",
		OCRText:  "npm error access denied",
		Keywords: []string{"무관한", "키워드"},
		Answer:   "답변 없음",
	}}

	query := OCRMarker + "\nnpm error access denied"
	result := s.Search(context.Background(), records, query, Options{})

	if len(result.Results) != 1 {
		t.Fatalf("Expected the OCR-field match to clear the floor, got %d results", len(result.Results))
	}
	if result.Results[0].Score < 0.3 {
		t.Errorf("Expected a dominant OCR-field score, got %f", result.Results[0].Score)
	}
}
