package search

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avaldezm/newsight/capture"
	"github.com/avaldezm/newsight/conversation"
	"github.com/avaldezm/newsight/interests"
	"github.com/avaldezm/newsight/internal/metrics"
	"github.com/avaldezm/newsight/models"
	"github.com/avaldezm/newsight/news"
	"github.com/avaldezm/newsight/synthesis"
)

const (
	// maxDocuments bounds the list handed to synthesis and returned to the
	// caller.
	maxDocuments = 15
	// maxScreenshots bounds how many leading article documents get a
	// screenshot per search.
	maxScreenshots = 5
)

// Result is the full payload of one search turn.
type Result struct {
	Documents   []models.Document `json:"results"`
	Suggestions []string          `json:"suggestions"`
	Report      models.Report     `json:"analysis"`
	Interests   []string          `json:"userInterests"`
}

// Session composes the pipeline for conversational news search: retrieval,
// interest filtering, screenshot enrichment, report synthesis and the
// conversation tree.
type Session struct {
	tree        *conversation.Tree
	interests   interests.Store
	aggregator  *news.Aggregator
	synthesizer *synthesis.Synthesizer
	capture     *capture.Service
	logger      *log.Logger
	tracer      trace.Tracer
}

// NewSession wires the pipeline. capture may be nil to disable screenshots.
func NewSession(tree *conversation.Tree, store interests.Store, aggregator *news.Aggregator, synthesizer *synthesis.Synthesizer, capSvc *capture.Service, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Session{
		tree:        tree,
		interests:   store,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		capture:     capSvc,
		logger:      logger,
		tracer:      otel.Tracer("newsight/search"),
	}
}

// Search runs one full turn. The turn is recorded in the conversation tree
// with the raw query and context; retrieval and synthesis see the contextual
// query. Only an unusable query fails the call; provider and synthesis
// problems degrade to fallbacks inside their stages.
func (s *Session) Search(ctx context.Context, query string, contextEntries []string, userID string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{}, models.ErrEmptyQuery
	}
	metrics.SearchesTotal.Inc()

	ctx, span := s.tracer.Start(ctx, "session.search",
		trace.WithAttributes(attribute.String("query", query), attribute.String("user_id", userID)))
	defer span.End()

	userInterests, err := s.interests.Get(ctx, userID)
	if err != nil {
		s.logger.Printf("interest lookup for %s failed: %v", userID, err)
		userInterests = nil
	}
	s.logger.Printf("query %q context=%v interests=%v", query, contextEntries, userInterests)

	fullQuery := buildQueryWithContext(query, contextEntries)

	docs := s.aggregator.Fetch(ctx, fullQuery)
	filtered := news.FilterByInterests(docs, userInterests)
	if len(filtered) > maxDocuments {
		filtered = filtered[:maxDocuments]
	}
	span.SetAttributes(attribute.Int("documents", len(filtered)))

	s.enrichWithScreenshots(ctx, filtered)

	report := s.synthesizer.Synthesize(ctx, fullQuery, filtered, userInterests)

	node := s.tree.Append(query, contextEntries)
	s.tree.RecordOutcome(node, len(filtered) > 0)

	return Result{
		Documents:   filtered,
		Suggestions: report.Suggestions,
		Report:      report,
		Interests:   userInterests,
	}, nil
}

// Stats reports the shape of the conversation tree.
func (s *Session) Stats() conversation.Stats { return s.tree.Stats() }

// Reset discards the conversation tree for a fresh session.
func (s *Session) Reset() { s.tree.Reset() }

// buildQueryWithContext appends the last two context entries to the query so
// follow-up searches stay on topic without dragging the whole history along.
func buildQueryWithContext(query string, contextEntries []string) string {
	if len(contextEntries) == 0 {
		return query
	}
	recent := contextEntries
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	return query + " " + strings.Join(recent, " ")
}

// enrichWithScreenshots replaces ImageURL with a fresh screenshot reference
// on the first few article documents. Video documents keep their thumbnails.
func (s *Session) enrichWithScreenshots(ctx context.Context, docs []models.Document) {
	if s.capture == nil {
		return
	}
	targets := make([]int, 0, maxScreenshots)
	for i, doc := range docs {
		if len(targets) >= maxScreenshots {
			break
		}
		if doc.Kind != models.KindArticle {
			continue
		}
		targets = append(targets, i)
	}
	if len(targets) == 0 {
		return
	}

	urls := make([]string, 0, len(targets))
	for _, i := range targets {
		urls = append(urls, docs[i].URL)
	}
	shots := s.capture.CaptureMany(ctx, urls)
	for _, i := range targets {
		if ref, ok := shots[docs[i].URL]; ok {
			docs[i].ImageURL = ref
		}
	}
}
