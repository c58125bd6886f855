// Package qna assembles new Q&A records: derived titles, tags,
// category-alias keywords, and OCR cleanup all happen once, at creation
// time. A record's keywords are persisted and never recomputed.
package qna

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codecamp-kr/qna-assist/internal/extract"
	"github.com/codecamp-kr/qna-assist/internal/model"
	"github.com/codecamp-kr/qna-assist/internal/ocr"
	"github.com/codecamp-kr/qna-assist/internal/store"
)

// DefaultAuthor is used when no author is given.
const DefaultAuthor = "익명"

// imageOnlyTitle is the title for records whose body carries no text.
const imageOnlyTitle = "[이미지 포함]"

// Input is everything needed to create a record. Keywords come from the
// hybrid extractor (or the caller) and must not be empty.
type Input struct {
	Question string
	Answer   string
	Category string
	Author   string
	Keywords []string
	OCRText  string
	ImageURL string
}

// Build validates the input and produces a complete record, with its id
// assigned against the existing collection.
func Build(existing []model.QnARecord, in Input) (model.QnARecord, error) {
	if strings.TrimSpace(in.Question) == "" {
		return model.QnARecord{}, fmt.Errorf("question is required")
	}
	if strings.TrimSpace(in.Answer) == "" {
		return model.QnARecord{}, fmt.Errorf("answer is required")
	}
	if !model.ValidCategory(in.Category) {
		return model.QnARecord{}, fmt.Errorf("unknown category %q", in.Category)
	}
	if len(in.Keywords) == 0 {
		return model.QnARecord{}, fmt.Errorf("keywords are required")
	}

	body := strings.TrimSpace(in.Question)

	ocrText := strings.TrimSpace(in.OCRText)
	if ocrText != "" {
		ocrText = ocr.FilterText(ocrText)
	}
	ocrErrorLine := ""
	if ocrText != "" {
		ocrErrorLine = strings.TrimSpace(strings.SplitN(ocrText, "\n", 2)[0])
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = DefaultAuthor
	}

	return model.QnARecord{
		ID:           store.NextID(existing),
		Category:     in.Category,
		Title:        deriveTitle(body, ocrText),
		Body:         body,
		OCRText:      ocrText,
		OCRErrorLine: ocrErrorLine,
		Tags:         deriveTags(ocrText, in.Keywords, in.Category),
		Keywords:     mergeCategoryKeywords(in.Category, in.Keywords),
		Answer:       strings.TrimSpace(in.Answer),
		Author:       author,
		Timestamp:    time.Now().UTC(),
		Views:        0,
		ImageURL:     in.ImageURL,
	}, nil
}

var (
	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	fenceMarkerRe   = regexp.MustCompile("(?m)^```[\\w]*\n?|\n?```$")
	symbolOnlyRe    = regexp.MustCompile("^[`!@#$%^&*()_+=\\-\\[\\]{}|\\\\:;\"'<>,.?/~]*$")
	htmlTagRe       = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// deriveTitle prefers the body's first meaningful line, then the OCR title
// heuristic, then the image-only placeholder.
func deriveTitle(body, ocrText string) string {
	bodyText := strings.TrimSpace(markdownImageRe.ReplaceAllString(body, ""))
	if bodyText != "" {
		if title := firstMeaningfulLine(body, 100); title != "" && title != imageOnlyTitle {
			return title
		}
	}
	if ocrText != "" {
		if title := ocr.TitleFromFiltered(ocrText, 80); title != "" {
			return title
		}
	}
	return imageOnlyTitle
}

// firstMeaningfulLine scans for the first line that is not blank, not pure
// punctuation, and longer than 2 runes, truncating to maxLength.
func firstMeaningfulLine(text string, maxLength int) string {
	clean := markdownImageRe.ReplaceAllString(text, "")
	clean = fenceMarkerRe.ReplaceAllString(clean, "")
	// Pasted HTML answers show up occasionally; index the visible text.
	if htmlTagRe.MatchString(clean) {
		clean = extract.StripHTML(clean)
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return imageOnlyTitle
	}

	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > 2 && !symbolOnlyRe.MatchString(line) {
			if utf8.RuneCountInString(line) > maxLength {
				runes := []rune(line)
				return strings.TrimSpace(string(runes[:maxLength])) + "..."
			}
			return line
		}
	}
	return imageOnlyTitle
}

// tagRules map content patterns to tags. OCR file-name noise is removed
// before matching.
var tagRules = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?i)c:\\|ps |windows|powershell`), "Windows"},
	{regexp.MustCompile(`(?i)powershell|ps1`), "PowerShell"},
	{regexp.MustCompile(`(?i)\bnpm\b`), "npm"},
	{regexp.MustCompile(`(?i)\bnode\b|nodejs`), "Node.js"},
	{regexp.MustCompile(`(?i)\breact\b`), "React"},
	{regexp.MustCompile(`(?i)\bgit\b`), "Git"},
	{regexp.MustCompile(`(?i)\bcss\b|flexbox|grid`), "CSS"},
	{regexp.MustCompile(`(?i)vscode|vs code|visual studio code`), "VSCode"},
	{regexp.MustCompile(`(?i)express`), "Express"},
}

var (
	fileNameNoiseRe    = regexp.MustCompile(`(?i)[\w-]+\.(png|jpg|jpeg|gif|svg|webp|bmp|ico|js|jsx|ts|tsx|css|scss|html|json|xml)`)
	placeholderNoiseRe = regexp.MustCompile(`(?i)placeholder[\w-]*`)
)

func deriveTags(ocrText string, keywords []string, category string) []string {
	cleaned := fileNameNoiseRe.ReplaceAllString(ocrText, "")
	cleaned = placeholderNoiseRe.ReplaceAllString(cleaned, "")

	combined := strings.ToLower(cleaned + " " + strings.Join(keywords, " "))

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range tagRules {
		if rule.re.MatchString(combined) && !seen[rule.tag] {
			seen[rule.tag] = true
			tags = append(tags, rule.tag)
		}
	}
	if len(tags) == 0 && category != "" {
		tags = append(tags, category)
	}
	return tags
}

// categoryAliases let a search hit a record through its category name.
var categoryAliases = map[string][]string{
	model.CategoryFrontend: {"Frontend", "Front-end"},
	model.CategoryBackend:  {"Backend", "Back-end"},
	model.CategoryVSC:      {"VSC", "VSCode"},
	model.CategoryGit:      {"Git", "GitHub"},
	model.CategoryTerminal: {"Terminal", "터미널"},
	model.CategoryNode:     {"Node", "Node.js", "nodejs"},
	model.CategoryFigma:    {"Figma"},
	model.CategoryEtc:      {},
}

// mergeCategoryKeywords prepends the category's alias keywords, then the
// extracted keywords, deduplicated in that order.
func mergeCategoryKeywords(category string, keywords []string) []string {
	aliases, ok := categoryAliases[category]
	if !ok {
		aliases = []string{category}
	}

	seen := make(map[string]bool, len(aliases)+len(keywords))
	var merged []string
	for _, list := range [][]string{aliases, keywords} {
		for _, k := range list {
			if !seen[k] {
				seen[k] = true
				merged = append(merged, k)
			}
		}
	}
	return merged
}
