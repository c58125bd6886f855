package ocr

import (
	"strings"
	"testing"
)

func TestFilterText_StripsPromptKeepsError(t *testing.T) {
	got := FilterText("PS C:\\Users\\x> npm install\nerror: access denied")

	if got == "" {
		t.Fatal("Expected non-blank output")
	}
	if strings.Contains(got, "PS C:\\") {
		t.Errorf("Expected prompt stripped, got %q", got)
	}
	if !strings.Contains(got, "error: access denied") {
		t.Errorf("Expected error line retained, got %q", got)
	}
}

func TestFilterText_DropsCommandEcho(t *testing.T) {
	input := "+ npm-install react\nTypeError: cannot read properties of undefined"

	got := FilterText(input)

	if strings.Contains(got, "npm-install") {
		t.Errorf("Expected command echo dropped, got %q", got)
	}
	if !strings.Contains(got, "TypeError") {
		t.Errorf("Expected error line retained, got %q", got)
	}
}

func TestFilterText_TrailingContextLimit(t *testing.T) {
	input := strings.Join([]string{
		"Error: module not found in project dependencies",
		"context line one",
		"context line two",
		"context line three",
		"context line four",
	}, "\n")

	got := FilterText(input)

	if !strings.Contains(got, "context line one") || !strings.Contains(got, "context line two") {
		t.Errorf("Expected two trailing context lines kept, got %q", got)
	}
	if strings.Contains(got, "context line three") {
		t.Errorf("Expected run closed after two context lines, got %q", got)
	}
}

func TestFilterText_SafetyNetKeepsErrorKeywordLines(t *testing.T) {
	// Filtered result would be under the useful-length floor; the filter
	// must fall back to the keyword-bearing lines, never blank.
	got := FilterText("짧은 오류")

	if got == "" {
		t.Fatal("Expected non-blank output for input with an error keyword")
	}
	if !strings.Contains(got, "오류") {
		t.Errorf("Expected the error keyword line, got %q", got)
	}
}

func TestFilterText_NoSignalReturnsOriginal(t *testing.T) {
	input := "hello world\nplain text"

	if got := FilterText(input); got != input {
		t.Errorf("Expected original text when nothing matches, got %q", got)
	}
}

func TestFilterText_Empty(t *testing.T) {
	if got := FilterText(""); got != "" {
		t.Errorf("Expected empty output for empty input, got %q", got)
	}
}

func TestFilterText_StructuredErrorFields(t *testing.T) {
	input := strings.Join([]string{
		"PS C:\\Users\\dev> Get-Thing",
		"CategoryInfo : ObjectNotFound",
		"FullyQualifiedErrorId : CommandNotFoundException",
	}, "\n")

	got := FilterText(input)

	if !strings.Contains(got, "CategoryInfo") || !strings.Contains(got, "FullyQualifiedErrorId") {
		t.Errorf("Expected structured error fields retained, got %q", got)
	}
}
