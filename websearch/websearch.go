package websearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avaldezm/newsight/websearch/brave"
	"github.com/avaldezm/newsight/websearch/models"
	"github.com/avaldezm/newsight/websearch/serper"
)

// Searcher discovers web results for a query, optionally restricted to the
// given sites.
type Searcher interface {
	Discover(ctx context.Context, q string, k int, sites []string) ([]models.Result, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

func NewSearcher(provider Provider, apiKey string, timeout time.Duration) (Searcher, error) {
	client := http.DefaultClient
	if timeout > 0 {
		client = &http.Client{Timeout: timeout}
	}
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey, Client: client}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey, Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported web search provider: %s", provider)
	}
}
