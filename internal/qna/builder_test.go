package qna

import (
	"reflect"
	"strings"
	"testing"

	"github.com/codecamp-kr/qna-assist/internal/model"
)

func validInput() Input {
	return Input{
		Question: "useState가 왜 두 번 실행되나요?",
		Answer:   "StrictMode에서는 렌더가 두 번 호출됩니다",
		Category: "Front-end",
		Keywords: []string{"React", "useState"},
	}
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty question", func(in *Input) { in.Question = "  " }},
		{"empty answer", func(in *Input) { in.Answer = "" }},
		{"unknown category", func(in *Input) { in.Category = "Database" }},
		{"no keywords", func(in *Input) { in.Keywords = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := Build(nil, in); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	record, err := Build(nil, validInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if record.ID != "qna-001" {
		t.Errorf("Expected first id qna-001, got %s", record.ID)
	}
	if record.Author != DefaultAuthor {
		t.Errorf("Expected default author, got %q", record.Author)
	}
	if record.Views != 0 {
		t.Errorf("Expected zero views, got %d", record.Views)
	}
	if record.Timestamp.IsZero() {
		t.Error("Expected timestamp set")
	}
}

func TestBuild_IDFollowsExisting(t *testing.T) {
	existing := []model.QnARecord{{ID: "qna-041"}}

	record, err := Build(existing, validInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.ID != "qna-042" {
		t.Errorf("Expected qna-042, got %s", record.ID)
	}
}

func TestBuild_TitleFromBody(t *testing.T) {
	in := validInput()
	in.Question = "useState가 왜 두 번 실행되나요?\n추가 설명입니다"

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.Title != "useState가 왜 두 번 실행되나요?" {
		t.Errorf("Expected first body line as title, got %q", record.Title)
	}
}

func TestBuild_ImageOnlyTitle(t *testing.T) {
	in := validInput()
	in.Question = "![스크린샷](uploads/shot.png)"

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.Title != "[이미지 포함]" {
		t.Errorf("Expected image-only placeholder title, got %q", record.Title)
	}
}

func TestBuild_TitleFromOCR(t *testing.T) {
	in := validInput()
	in.Question = "![스크린샷](uploads/shot.png)"
	in.OCRText = "TypeError: foo is not a function"

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.Title != "TypeError: foo is not a function" {
		t.Errorf("Expected OCR-derived title, got %q", record.Title)
	}
	if record.OCRErrorLine != "TypeError: foo is not a function" {
		t.Errorf("Expected first filtered OCR line, got %q", record.OCRErrorLine)
	}
}

func TestBuild_CategoryAliasKeywords(t *testing.T) {
	in := validInput()
	in.Category = "Node"
	in.Keywords = []string{"npm", "Node"}

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"Node", "Node.js", "nodejs", "npm"}
	if !reflect.DeepEqual(record.Keywords, want) {
		t.Errorf("Expected %v, got %v", want, record.Keywords)
	}
}

func TestBuild_TagsFromContent(t *testing.T) {
	in := validInput()
	in.Category = "Node"
	in.OCRText = "npm ERR! code ENOENT something went wrong here"
	in.Keywords = []string{"npm"}

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	found := false
	for _, tag := range record.Tags {
		if tag == "npm" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected npm tag, got %v", record.Tags)
	}
}

func TestBuild_TagsCategoryFallback(t *testing.T) {
	in := validInput()
	in.Category = "기타"
	in.Keywords = []string{"질문"}
	in.Question = "일반적인 질문입니다"

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(record.Tags) != 1 || record.Tags[0] != "기타" {
		t.Errorf("Expected category fallback tag, got %v", record.Tags)
	}
}

func TestBuild_TrimsFields(t *testing.T) {
	in := validInput()
	in.Question = "  질문 내용  "
	in.Answer = "  답변 내용  "
	in.Author = "  김개발  "

	record, err := Build(nil, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.Body != "질문 내용" || record.Answer != "답변 내용" || record.Author != "김개발" {
		t.Errorf("Expected trimmed fields, got %+v", record)
	}
}

func TestFirstMeaningfulLine_SkipsSymbolLines(t *testing.T) {
	got := firstMeaningfulLine("---\n!!!\n진짜 제목 줄\n다음", 100)

	if got != "진짜 제목 줄" {
		t.Errorf("Expected symbol-only lines skipped, got %q", got)
	}
}

func TestFirstMeaningfulLine_Truncation(t *testing.T) {
	long := strings.Repeat("가", 150)

	got := firstMeaningfulLine(long, 100)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	if len([]rune(got)) > 103 {
		t.Errorf("Expected truncation to 100 runes plus ellipsis, got %d runes", len([]rune(got)))
	}
}
