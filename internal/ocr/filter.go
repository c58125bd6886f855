// Package ocr cleans screenshot-derived text and provides the vision
// capability that produces it. OCR output of terminal windows is mostly
// prompt noise; the filter isolates the lines that actually describe the
// error.
package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Shell-prompt prefixes stripped from the head of a line: PowerShell,
// plain drive-letter CMD, user@host, bare $/#/>.
var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^PS\s+[A-Z]:\\[^>]+>\s*`),
	regexp.MustCompile(`^[A-Z]:\\[^>]+>\s*`),
	regexp.MustCompile(`^[\w\-]+@[\w\-]+:[~/\w\-]*[$#]\s*`),
	regexp.MustCompile(`^[$#]\s+`),
	regexp.MustCompile(`^>\s+`),
}

// PowerShell echoes the command back with a leading "+".
var commandEchoRe = regexp.MustCompile(`^\+\s+[\w\-]+`)

// errorKeywords mark a line as error-relevant, bilingual.
var errorKeywords = []string{
	"error",
	"exception",
	"failed",
	"cannot",
	"unable",
	"denied",
	"unauthorized",
	"forbidden",
	"not found",
	"invalid",
	"syntax error",
	"오류",
	"실패",
	"없습니다",
	"없음",
	"거부",
	"권한",
}

// Structured error fields and stack-trace frames also mark a line.
var errorFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CategoryInfo\s*:`),
	regexp.MustCompile(`(?i)FullyQualifiedErrorId\s*:`),
	regexp.MustCompile(`(?i)at\s+[\w.]+\s*\(`),
	regexp.MustCompile(`(?i)Traceback`),
	regexp.MustCompile(`(?i)File\s+"[^"]+",\s+line\s+\d+`),
}

// trailingContextLines is how many non-error lines after an error-relevant
// line are kept as context before the run closes.
const trailingContextLines = 2

// minUsefulLength guards against over-filtering: below this the filter
// falls back to keyword lines, then to the unmodified input.
const minUsefulLength = 20

// FilterText reduces OCR'd terminal text to its error-relevant lines plus
// a little trailing context. It never returns something less informative
// than the original: when filtering would destroy all signal, the raw
// keyword-bearing lines — or the whole input — come back instead.
func FilterText(ocrText string) string {
	if ocrText == "" {
		return ""
	}

	lines := strings.Split(ocrText, "\n")
	var filtered []string
	inErrorRun := false
	trailing := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		stripped := false
		for _, re := range promptPatterns {
			if re.MatchString(line) {
				line = strings.TrimSpace(re.ReplaceAllString(line, ""))
				stripped = true
				break
			}
		}
		if stripped && line == "" {
			continue
		}

		if commandEchoRe.MatchString(line) && !containsErrorKeyword(line) {
			continue
		}

		if containsErrorKeyword(line) || matchesErrorField(line) {
			filtered = append(filtered, line)
			inErrorRun = true
			trailing = 0
			continue
		}

		if inErrorRun {
			filtered = append(filtered, line)
			trailing++
			if trailing >= trailingContextLines {
				inErrorRun = false
			}
		}
	}

	result := strings.TrimSpace(strings.Join(filtered, "\n"))
	if utf8.RuneCountInString(result) >= minUsefulLength {
		return result
	}

	// Filtering was too aggressive. Keep any line carrying an error
	// keyword; failing that, the original text wins.
	var errorLines []string
	for _, line := range lines {
		if containsErrorKeyword(line) {
			errorLines = append(errorLines, line)
		}
	}
	if len(errorLines) > 0 {
		return strings.TrimSpace(strings.Join(errorLines, "\n"))
	}
	return ocrText
}

func containsErrorKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func matchesErrorField(line string) bool {
	for _, re := range errorFieldPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
