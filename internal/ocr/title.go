package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	hasExceptionRe  = regexp.MustCompile(`(?i)Exception|Error`)
	exceptionTypeRe = regexp.MustCompile(`(\w+(Exception|Error)[^:]*)(:\s*(.+))?`)
	labeledErrorRe  = regexp.MustCompile(`(?i)오류:|error:|ERR!|failed`)
	errorFieldRe    = regexp.MustCompile(`(?i)CategoryInfo|FullyQualifiedErrorId`)
	afterColonRe    = regexp.MustCompile(`:\s*([^:]+)`)

	leadingSymbolsRe = regexp.MustCompile(`^[+\-*#$>\s]+`)
	innerSpaceRe     = regexp.MustCompile(`\s+`)
	urlRe            = regexp.MustCompile(`https?://\S+`)
	windowsPathRe    = regexp.MustCompile(`[A-Z]:\\\S+`)
)

// TitleFromFiltered derives a short record title from filtered OCR text.
//
// Priority: a Type: message exception line; a labeled error line
// (error:/오류:/ERR!/failed), cleaned and with long URLs or Windows paths
// redacted; a structured error field's value; the first keyword-bearing
// line; finally the literal first line. Every branch honors maxLength with
// a 3-rune reservation for the ellipsis.
func TitleFromFiltered(filteredText string, maxLength int) string {
	if filteredText == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = 80
	}

	var lines []string
	for _, line := range strings.Split(filteredText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	// 1. "ZeroDivisionError: division by zero" style lines.
	for _, line := range lines {
		if !hasExceptionRe.MatchString(line) || !strings.Contains(line, ":") {
			continue
		}
		m := exceptionTypeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		errType, errMsg := m[1], m[4]
		if errMsg != "" && utf8.RuneCountInString(errMsg) < maxLength-utf8.RuneCountInString(errType)-3 {
			return errType + ": " + errMsg
		}
		return errType
	}

	// 2. Labeled error lines.
	for _, line := range lines {
		if !labeledErrorRe.MatchString(line) {
			continue
		}
		cleaned := cleanTitleLine(line)
		if utf8.RuneCountInString(cleaned) > maxLength {
			cleaned = urlRe.ReplaceAllString(cleaned, "[...]")
			cleaned = windowsPathRe.ReplaceAllString(cleaned, "[...]")
		}
		return truncateWithEllipsis(cleaned, maxLength)
	}

	// 3. Structured error fields: take the value after the first colon.
	for _, line := range lines {
		if !errorFieldRe.MatchString(line) {
			continue
		}
		if m := afterColonRe.FindStringSubmatch(line); m != nil {
			info := strings.TrimSpace(m[1])
			if info != "" && utf8.RuneCountInString(info) <= maxLength {
				return info
			}
		}
		break
	}

	// 4. First line with any error keyword.
	for _, line := range lines {
		if containsErrorKeyword(line) {
			return truncateWithEllipsis(cleanTitleLine(line), maxLength)
		}
	}

	// 5. The literal first line.
	return truncateWithEllipsis(lines[0], maxLength)
}

func cleanTitleLine(line string) string {
	line = leadingSymbolsRe.ReplaceAllString(line, "")
	line = innerSpaceRe.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

func truncateWithEllipsis(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength-3]) + "..."
}
