package models

import "errors"

// ErrEmptyQuery is returned when a search is requested without a usable query.
var ErrEmptyQuery = errors.New("query is required and must be a non-empty string")

// DocumentKind distinguishes written articles from video results.
type DocumentKind string

const (
	KindArticle DocumentKind = "article"
	KindVideo   DocumentKind = "video"
)

// Document is a single retrieved candidate from any provider. Identity is the
// URL; duplicates from different providers are allowed to co-exist.
type Document struct {
	Title         string       `json:"title"`
	URL           string       `json:"url"`
	Snippet       string       `json:"snippet"`
	Source        string       `json:"source"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	PublishedDate string       `json:"publishedDate,omitempty"`
	Kind          DocumentKind `json:"type"`
}

// Sentiment is the overall tone of a synthesized report.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ParseSentiment maps free-form provider output onto the known values,
// defaulting to neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative:
		return Sentiment(s)
	default:
		return SentimentNeutral
	}
}

// Report is the structured result of analyzing a document list.
type Report struct {
	Summary         string    `json:"summary"`
	KeyPoints       []string  `json:"keyPoints"`
	Suggestions     []string  `json:"suggestions"`
	Sentiment       Sentiment `json:"sentiment"`
	RelevantIndices []int     `json:"relevantIndices"`
}
