package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/avaldezm/newsight/conversation"
	"github.com/avaldezm/newsight/interests/inmemory"
	"github.com/avaldezm/newsight/models"
	"github.com/avaldezm/newsight/news"
	"github.com/avaldezm/newsight/synthesis"
)

type fakeProvider struct {
	name string
	docs []models.Document
	err  error

	mu        sync.Mutex
	lastQuery string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	f.mu.Lock()
	f.lastQuery = query
	f.mu.Unlock()
	return f.docs, f.err
}

func (f *fakeProvider) queried() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

type fakeLLM struct {
	text string
	err  error
}

func (f fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestSession(providers []news.Provider, llm fakeLLM) (*Session, *conversation.Tree) {
	tree := conversation.NewTree()
	agg := news.NewAggregator(providers, time.Second, quiet())
	synth := synthesis.NewSynthesizer(llm, quiet())
	session := NewSession(tree, inmemory.NewStore(), agg, synth, nil, quiet())
	return session, tree
}

func docsNamed(n int, source string) []models.Document {
	docs := make([]models.Document, n)
	for i := range docs {
		docs[i] = models.Document{
			Title:   fmt.Sprintf("%s title %d", source, i),
			URL:     fmt.Sprintf("https://example.com/%s/%d", source, i),
			Snippet: fmt.Sprintf("%s snippet %d", source, i),
			Source:  source,
			Kind:    models.KindArticle,
		}
	}
	return docs
}

const goodReport = `{"summary":"model summary","keyPoints":["k1"],"suggestions":["try this","and this"],"sentiment":"positive","relevantArticles":[0]}`

func TestSearchRejectsEmptyQuery(t *testing.T) {
	session, tree := newTestSession([]news.Provider{&fakeProvider{name: "a", docs: docsNamed(1, "A")}}, fakeLLM{text: goodReport})

	for _, query := range []string{"", "   ", "\t\n"} {
		if _, err := session.Search(context.Background(), query, nil, "u1"); !errors.Is(err, models.ErrEmptyQuery) {
			t.Fatalf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
	if stats := tree.Stats(); stats.TotalNodes != 0 {
		t.Fatalf("rejected queries must not touch the tree, got %d nodes", stats.TotalNodes)
	}
}

func TestSearchReturnsDocumentsAndReport(t *testing.T) {
	session, tree := newTestSession([]news.Provider{&fakeProvider{name: "a", docs: docsNamed(3, "A")}}, fakeLLM{text: goodReport})

	result, err := session.Search(context.Background(), "energy", nil, "u1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(result.Documents))
	}
	if result.Report.Summary != "model summary" {
		t.Fatalf("unexpected report: %+v", result.Report)
	}
	if len(result.Suggestions) != 2 || result.Suggestions[0] != "try this" {
		t.Fatalf("suggestions should come from the report, got %v", result.Suggestions)
	}

	stats := tree.Stats()
	if stats.TotalNodes != 1 {
		t.Fatalf("expected one recorded turn, got %d", stats.TotalNodes)
	}
}

func TestSearchRecordsOutcomeOnNode(t *testing.T) {
	session, tree := newTestSession([]news.Provider{&fakeProvider{name: "a", docs: docsNamed(1, "A")}}, fakeLLM{text: goodReport})

	if _, err := session.Search(context.Background(), "q1", nil, "u1"); err != nil {
		t.Fatalf("search: %v", err)
	}
	node := tree.Append("probe", nil)
	if node.Parent == nil || node.Parent.Visits != 1 || node.Parent.Score != 1 {
		t.Fatalf("expected previous turn visited once with score 1, got %+v", node.Parent)
	}
}

func TestSearchBuildsContextualQuery(t *testing.T) {
	provider := &fakeProvider{name: "a", docs: docsNamed(1, "A")}
	session, _ := newTestSession([]news.Provider{provider}, fakeLLM{text: goodReport})

	if _, err := session.Search(context.Background(), "latest", []string{"one", "two", "three"}, "u1"); err != nil {
		t.Fatalf("search: %v", err)
	}
	// Only the last two context entries ride along.
	if got := provider.queried(); got != "latest two three" {
		t.Fatalf("unexpected contextual query: %q", got)
	}
}

func TestSearchFiltersByInterests(t *testing.T) {
	docs := []models.Document{
		{Title: "AI chips surge", URL: "https://example.com/1", Snippet: "semiconductors", Source: "A", Kind: models.KindArticle},
		{Title: "Football results", URL: "https://example.com/2", Snippet: "league", Source: "A", Kind: models.KindArticle},
	}
	provider := &fakeProvider{name: "a", docs: docs}
	session, _ := newTestSession([]news.Provider{provider}, fakeLLM{text: goodReport})

	store := inmemory.NewStore()
	store.Add(context.Background(), "u1", "AI")
	session.interests = store

	result, err := session.Search(context.Background(), "news", nil, "u1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Documents) != 1 || result.Documents[0].Title != "AI chips surge" {
		t.Fatalf("expected interest filter to keep one document, got %v", result.Documents)
	}
	if len(result.Interests) != 1 || result.Interests[0] != "AI" {
		t.Fatalf("result should echo the interests, got %v", result.Interests)
	}
}

func TestSearchCapsDocuments(t *testing.T) {
	provider := &fakeProvider{name: "a", docs: docsNamed(30, "A")}
	session, _ := newTestSession([]news.Provider{provider}, fakeLLM{text: goodReport})

	result, err := session.Search(context.Background(), "q", nil, "u1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result.Documents) != maxDocuments {
		t.Fatalf("expected cap of %d, got %d", maxDocuments, len(result.Documents))
	}
}

func TestSearchAllProvidersFailStillSucceeds(t *testing.T) {
	session, tree := newTestSession([]news.Provider{
		&fakeProvider{name: "a", err: errors.New("down")},
		&fakeProvider{name: "b", err: errors.New("down too")},
	}, fakeLLM{err: errors.New("llm down as well")})

	result, err := session.Search(context.Background(), "blackout", nil, "u1")
	if err != nil {
		t.Fatalf("search must absorb provider and llm failures, got %v", err)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("expected the fallback document pair, got %d", len(result.Documents))
	}
	if result.Report.Summary == "" {
		t.Fatalf("expected a fallback report")
	}

	// The fallback pair counts as a non-empty result.
	node := tree.Append("probe", nil)
	if node.Parent.Visits != 1 || node.Parent.Score != 1 {
		t.Fatalf("fallback turn should score as success, got %+v", node.Parent)
	}
}

func TestResetClearsConversation(t *testing.T) {
	session, _ := newTestSession([]news.Provider{&fakeProvider{name: "a", docs: docsNamed(1, "A")}}, fakeLLM{text: goodReport})

	session.Search(context.Background(), "q1", nil, "u1")
	session.Search(context.Background(), "q2", []string{"q1"}, "u1")
	session.Reset()

	if stats := session.Stats(); stats.TotalNodes != 0 {
		t.Fatalf("expected empty tree after reset, got %+v", stats)
	}
}
