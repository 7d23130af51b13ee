package synthesis

import (
	"fmt"
	"strings"

	"github.com/avaldezm/newsight/models"
)

// BuildPrompt renders the analysis prompt: every document indexed from 1 so
// the model can cite back indices, followed by strict JSON-only output
// instructions.
func BuildPrompt(query string, docs []models.Document, interests []string) string {
	var context strings.Builder
	for i, doc := range docs {
		if i > 0 {
			context.WriteString("\n\n")
		}
		fmt.Fprintf(&context, "[%d] %s - %s\n   %s\n   URL: %s", i+1, doc.Source, doc.Title, doc.Snippet, doc.URL)
	}

	interestsText := ""
	if len(interests) > 0 {
		interestsText = fmt.Sprintf("\n\nUser interests: %s", strings.Join(interests, ", "))
	}

	return fmt.Sprintf(`Analyze the following %d news items about "%s" and respond ONLY with a valid JSON object.%s

NEWS:
%s

INSTRUCTIONS:
1. Executive summary of 4-6 paragraphs (at least 300 words)
2. 5-7 relevant key points
3. 3-5 specific follow-up search suggestions
4. Overall sentiment
5. Relevant articles (zero-based indices)

RESPOND ONLY WITH THIS JSON (no extra text, no explanations, no markdown):
{
  "summary": "extended executive summary here",
  "keyPoints": ["point 1", "point 2", "point 3", "point 4", "point 5"],
  "suggestions": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "sentiment": "positive",
  "relevantArticles": [0, 1, 2]
}`, len(docs), query, interestsText, context.String())
}
