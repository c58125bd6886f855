package extract

import (
	"strings"
	"testing"
)

func TestCleanMarkup(t *testing.T) {
	input := "# 질문\n![스크린샷](uploads/shot.png)\n[공식 문서](https://react.dev)를 봤는데\n```js\nconst a = 1\n```\n`useState`가 안돼요"

	got := CleanMarkup(input)

	if strings.Contains(got, "![") || strings.Contains(got, "uploads/shot.png") {
		t.Errorf("Expected image reference removed, got %q", got)
	}
	if !strings.Contains(got, "공식 문서") {
		t.Errorf("Expected link text kept, got %q", got)
	}
	if strings.Contains(got, "https://react.dev") {
		t.Errorf("Expected link URL removed, got %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("Expected fence markers removed, got %q", got)
	}
	if !strings.Contains(got, "const a = 1") {
		t.Errorf("Expected fence content kept, got %q", got)
	}
	if strings.Contains(got, "`") {
		t.Errorf("Expected inline code delimiters removed, got %q", got)
	}
	if !strings.Contains(got, "useState") {
		t.Errorf("Expected inline code content kept, got %q", got)
	}
	if strings.Contains(got, "#") {
		t.Errorf("Expected heading marker removed, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"React! useState?? 안돼요", "react usestate 안돼요"},
		{"  npm   install  ", "npm install"},
		{"C:\\Users\\me", "c users me"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	input := `<div><p>useState 오류</p><script>alert(1)</script><style>p{}</style></div>`

	got := StripHTML(input)

	if !strings.Contains(got, "useState 오류") {
		t.Errorf("Expected visible text kept, got %q", got)
	}
	if strings.Contains(got, "alert") {
		t.Errorf("Expected script content skipped, got %q", got)
	}
	if strings.Contains(got, "p{}") {
		t.Errorf("Expected style content skipped, got %q", got)
	}
}

func TestStripHTML_PlainTextPassthrough(t *testing.T) {
	input := "useState 상태가 안 바뀌어요"
	if got := StripHTML(input); got != input {
		t.Errorf("Expected plain text unchanged, got %q", got)
	}
}
