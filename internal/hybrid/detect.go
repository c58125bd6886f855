package hybrid

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Auto-detection thresholds for OCR-looking text. Long pasted text with
// many special characters or line breaks is almost always a screenshot
// transcription, not a typed question.
const (
	ocrMinLength   = 150
	ocrMaxSpecials = 20
	ocrMaxNewlines = 5
)

var specialCharRe = regexp.MustCompile(`[^\w\s\x{3131}-\x{3163}\x{AC00}-\x{D7A3}]`)

// LooksLikeOCR reports whether question text that was not flagged by the
// caller should be treated as OCR-derived anyway.
func LooksLikeOCR(question string) bool {
	if utf8.RuneCountInString(question) <= ocrMinLength {
		return false
	}

	specials := len(specialCharRe.FindAllString(question, -1))
	newlines := strings.Count(question, "\n")

	return specials > ocrMaxSpecials || newlines > ocrMaxNewlines
}
