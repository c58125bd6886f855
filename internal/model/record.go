package model

import "time"

// Category values used by the Q&A archive. The UI offers exactly this set;
// records created through the API carry one of these strings.
const (
	CategoryFrontend = "Front-end"
	CategoryBackend  = "Back-end"
	CategoryFigma    = "Figma"
	CategoryGit      = "Git/GitHub"
	CategoryTerminal = "Terminal"
	CategoryVSC      = "VSC"
	CategoryNode     = "Node"
	CategoryEtc      = "기타"
)

// Categories lists every valid record category in display order.
var Categories = []string{
	CategoryFrontend,
	CategoryBackend,
	CategoryFigma,
	CategoryGit,
	CategoryTerminal,
	CategoryVSC,
	CategoryNode,
	CategoryEtc,
}

// QnARecord is one archived question/answer pair. Records are append-only:
// once written, everything except Views is immutable.
type QnARecord struct {
	ID           string    `json:"id"`                     // "qna-001", strictly increasing
	Category     string    `json:"category"`               // one of Categories
	Title        string    `json:"title"`                  // derived, <=100 chars + ellipsis
	Body         string    `json:"body"`                   // original question, markdown allowed
	OCRText      string    `json:"ocrText,omitempty"`      // filtered OCR text, empty if none
	OCRErrorLine string    `json:"ocrErrorLine,omitempty"` // first line of OCRText
	Tags         []string  `json:"tags"`                   // derived, deduplicated
	Keywords     []string  `json:"keywords"`               // persisted at creation, never recomputed
	Answer       string    `json:"answer"`
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	Views        int       `json:"views"`
	ImageURL     string    `json:"imageUrl,omitempty"`
}

// ScoredRecord is a QnARecord with the retrieval score attached.
// It is produced by the search scorer and never persisted.
type ScoredRecord struct {
	QnARecord
	Score float64 `json:"score"`
}

// ValidCategory reports whether c is one of the known record categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
