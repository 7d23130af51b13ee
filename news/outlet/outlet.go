package outlet

import (
	"context"
	"fmt"

	"github.com/avaldezm/newsight/models"
	"github.com/avaldezm/newsight/websearch"
)

// Provider surfaces articles from a single named outlet by running a
// site-restricted web search. One Provider is configured per outlet, so each
// outlet keeps its own contribution cap and shows up under its own name.
type Provider struct {
	OutletName string
	Site       string
	MaxResults int
	Searcher   websearch.Searcher
}

func New(name, site string, maxResults int, searcher websearch.Searcher) *Provider {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Provider{OutletName: name, Site: site, MaxResults: maxResults, Searcher: searcher}
}

func (p *Provider) Name() string { return "outlet_" + p.Site }

func (p *Provider) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	results, err := p.Searcher.Discover(ctx, query, p.MaxResults, []string{p.Site})
	if err != nil {
		return nil, fmt.Errorf("outlet %s search: %w", p.OutletName, err)
	}
	var docs []models.Document
	for i, r := range results {
		if i >= p.MaxResults {
			break
		}
		if r.Title == "" || r.URL == "" {
			continue
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = r.Title
		}
		docs = append(docs, models.Document{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: snippet,
			Source:  p.OutletName,
			Kind:    models.KindArticle,
		})
	}
	return docs, nil
}
