package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	imageRefRe   = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRefRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	fenceOpenRe  = regexp.MustCompile("(?m)^```[\\w]*\n?")
	fenceCloseRe = regexp.MustCompile("(?m)\n?```$")
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	headingRe    = regexp.MustCompile(`#{1,6}\s+`)

	nonWordRe    = regexp.MustCompile(`[^\w\s\x{3131}-\x{3163}\x{AC00}-\x{D7A3}]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanMarkup strips markdown noise from question text: image references
// disappear, links collapse to their text, code-fence delimiters and heading
// markers are removed while the content inside is kept.
func CleanMarkup(text string) string {
	text = imageRefRe.ReplaceAllString(text, "")
	text = linkRefRe.ReplaceAllString(text, "$1")
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Normalize lowercases the text, replaces everything outside word
// characters, whitespace and the two Hangul letter ranges with a space,
// and collapses whitespace runs.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripHTML extracts the visible text from pasted HTML, skipping script and
// style subtrees. Input without angle brackets is returned unchanged.
func StripHTML(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
