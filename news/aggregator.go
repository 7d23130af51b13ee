package news

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/avaldezm/newsight/internal/metrics"
	"github.com/avaldezm/newsight/models"
)

// Aggregator fans a query out to every configured provider and merges the
// results. Retrieval settles all providers rather than failing fast: a
// provider that errors, times out, or returns nothing never cancels the
// others, and merged results keep the declared provider order regardless of
// which provider answered first.
type Aggregator struct {
	providers []Provider
	timeout   time.Duration
	logger    *log.Logger
}

func NewAggregator(providers []Provider, timeout time.Duration, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(log.Writer(), "[NEWS] ", log.LstdFlags)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{providers: providers, timeout: timeout, logger: logger}
}

// Fetch retrieves documents from all providers concurrently. Every provider
// gets its own timeout derived from ctx. If every provider fails or returns
// nothing, Fetch returns the deterministic fallback pair instead of an empty
// list, so callers always have something to show.
func (a *Aggregator) Fetch(ctx context.Context, query string) []models.Document {
	results := make([][]models.Document, len(a.providers))

	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(idx int, p Provider) {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			docs, err := p.Fetch(pctx, query)
			if err != nil {
				a.logger.Printf("provider %s failed: %v", p.Name(), err)
				metrics.ProviderFailures.WithLabelValues(p.Name()).Inc()
				return
			}
			a.logger.Printf("provider %s: %d documents", p.Name(), len(docs))
			results[idx] = docs
		}(i, p)
	}
	wg.Wait()

	var merged []models.Document
	for _, docs := range results {
		merged = append(merged, docs...)
	}
	if len(merged) == 0 {
		a.logger.Printf("all providers empty for %q, returning fallback documents", query)
		return FallbackDocuments(query)
	}
	return merged
}

// FallbackDocuments builds the synthetic pair returned when no provider
// contributed anything: a general news search link and a video search link
// for the query.
func FallbackDocuments(query string) []models.Document {
	encoded := url.QueryEscape(query)
	return []models.Document{
		{
			Title:   fmt.Sprintf("Latest news about %s", query),
			URL:     fmt.Sprintf("https://www.google.com/search?q=%s&tbm=nws", encoded),
			Snippet: fmt.Sprintf("Up-to-date information about %s. Follow the link for details.", query),
			Source:  "Google Search",
			Kind:    models.KindArticle,
		},
		{
			Title:   fmt.Sprintf("%s: videos and analysis", query),
			URL:     fmt.Sprintf("https://www.youtube.com/results?search_query=%s", encoded),
			Snippet: fmt.Sprintf("Videos and multimedia coverage about %s.", query),
			Source:  "YouTube",
			Kind:    models.KindVideo,
		},
	}
}
