package news

import (
	"strings"

	"github.com/avaldezm/newsight/models"
)

// FilterByInterests keeps documents whose title or snippet mentions at least
// one interest, compared case-insensitively as a substring. An empty interest
// list filters nothing.
func FilterByInterests(docs []models.Document, interests []string) []models.Document {
	if len(interests) == 0 {
		return docs
	}
	var kept []models.Document
	for _, doc := range docs {
		content := strings.ToLower(doc.Title + " " + doc.Snippet)
		for _, interest := range interests {
			if strings.Contains(content, strings.ToLower(interest)) {
				kept = append(kept, doc)
				break
			}
		}
	}
	return kept
}
