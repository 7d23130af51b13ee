package synthesis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/avaldezm/newsight/internal/metrics"
	"github.com/avaldezm/newsight/models"
	"github.com/avaldezm/newsight/provider"
)

// Synthesizer turns retrieved documents into a structured report via the
// configured LLM provider. Provider errors and unparsable output degrade to
// the deterministic fallback report; Synthesize never fails outright.
type Synthesizer struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewSynthesizer(p provider.Provider, logger *log.Logger) *Synthesizer {
	if logger == nil {
		logger = log.New(log.Writer(), "[SYNTH] ", log.LstdFlags)
	}
	return &Synthesizer{provider: p, logger: logger}
}

// Synthesize builds the analysis prompt, invokes the provider and parses the
// response through the layered chain.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, docs []models.Document, interests []string) models.Report {
	if s.provider == nil {
		s.logger.Printf("no llm provider configured, using fallback report")
		metrics.SynthesisFallbacks.Inc()
		return FallbackReport(query, docs)
	}

	prompt := BuildPrompt(query, docs, interests)
	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Printf("llm generation failed: %v", err)
		metrics.SynthesisFallbacks.Inc()
		return FallbackReport(query, docs)
	}

	report, ok := ParseReport(text)
	if !ok {
		s.logger.Printf("could not parse model output, using fallback report")
		metrics.SynthesisFallbacks.Inc()
		return FallbackReport(query, docs)
	}
	return report
}

// FallbackReport builds a deterministic report from the documents alone. The
// summary leads with the first document, key points are the leading titles
// and suggestions are templated follow-up queries.
func FallbackReport(query string, docs []models.Document) models.Report {
	var mainTitle, mainSnippet string
	if len(docs) > 0 {
		mainTitle = docs[0].Title
		mainSnippet = docs[0].Snippet
	}
	if mainTitle == "" {
		mainTitle = "Updated information"
	}

	sources := uniqueSources(docs)
	sourcesText := "the consulted sources"
	if len(sources) > 0 {
		head := sources
		if len(head) > 3 {
			head = head[:3]
		}
		sourcesText = strings.Join(head, ", ")
		if len(sources) > 3 {
			sourcesText += " and other established outlets"
		}
	}

	summary := fmt.Sprintf(`Here is what was found about "%s": %s. %s

The consulted sources include %s. This topic has drawn considerable attention in recent days because of its current relevance.

According to the experts and analysts covered, this is a subject that deserves close attention for its short and long term implications. Different outlets have approached it from multiple angles, offering complementary analyses.

It is worth following future developments on this topic, as it could have significant impact across several sectors.`, query, mainTitle, mainSnippet, sourcesText)

	keyPoints := make([]string, 0, 5)
	for i, doc := range docs {
		if i >= 5 {
			break
		}
		keyPoints = append(keyPoints, doc.Title)
	}

	suggestions := []string{
		fmt.Sprintf("What is the latest news about %s?", query),
		fmt.Sprintf("Impact of %s on the economy", query),
		fmt.Sprintf("Expert analysis of %s", query),
		fmt.Sprintf("Future outlook for %s", query),
	}

	indices := make([]int, 0, 3)
	for i := range docs {
		if i >= 3 {
			break
		}
		indices = append(indices, i)
	}

	return models.Report{
		Summary:         summary,
		KeyPoints:       keyPoints,
		Suggestions:     suggestions,
		Sentiment:       models.SentimentNeutral,
		RelevantIndices: indices,
	}
}

func uniqueSources(docs []models.Document) []string {
	seen := make(map[string]struct{}, len(docs))
	var sources []string
	for _, doc := range docs {
		if doc.Source == "" {
			continue
		}
		if _, ok := seen[doc.Source]; ok {
			continue
		}
		seen[doc.Source] = struct{}{}
		sources = append(sources, doc.Source)
	}
	return sources
}
