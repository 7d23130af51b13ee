package news

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/avaldezm/newsight/models"
)

type stubProvider struct {
	name  string
	docs  []models.Document
	err   error
	delay time.Duration
}

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func doc(title, source string) models.Document {
	return models.Document{Title: title, URL: "https://example.com/" + title, Snippet: title, Source: source, Kind: models.KindArticle}
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestFetchMergesInDeclaredOrder(t *testing.T) {
	agg := NewAggregator([]Provider{
		stubProvider{name: "a", docs: []models.Document{doc("a1", "A")}, delay: 50 * time.Millisecond},
		stubProvider{name: "b", docs: []models.Document{doc("b1", "B"), doc("b2", "B")}},
	}, time.Second, quietLogger())

	docs := agg.Fetch(context.Background(), "q")
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	// Provider a answered last but still comes first.
	if docs[0].Source != "A" || docs[1].Source != "B" || docs[2].Source != "B" {
		t.Fatalf("order not preserved: %v", docs)
	}
}

func TestFetchSettlesAllDespiteFailure(t *testing.T) {
	agg := NewAggregator([]Provider{
		stubProvider{name: "broken", err: errors.New("boom")},
		stubProvider{name: "ok", docs: []models.Document{doc("x", "OK")}},
	}, time.Second, quietLogger())

	docs := agg.Fetch(context.Background(), "q")
	if len(docs) != 1 || docs[0].Source != "OK" {
		t.Fatalf("expected surviving provider's document, got %v", docs)
	}
}

func TestFetchTimesOutSlowProviderOnly(t *testing.T) {
	agg := NewAggregator([]Provider{
		stubProvider{name: "slow", docs: []models.Document{doc("late", "SLOW")}, delay: 500 * time.Millisecond},
		stubProvider{name: "fast", docs: []models.Document{doc("now", "FAST")}},
	}, 50*time.Millisecond, quietLogger())

	docs := agg.Fetch(context.Background(), "q")
	if len(docs) != 1 || docs[0].Source != "FAST" {
		t.Fatalf("expected only the fast provider's document, got %v", docs)
	}
}

func TestFetchHonorsPerProviderTimeout(t *testing.T) {
	agg := NewAggregator([]Provider{
		WithTimeout(stubProvider{name: "slow", docs: []models.Document{doc("late", "SLOW")}, delay: 500 * time.Millisecond}, 50*time.Millisecond),
		stubProvider{name: "fast", docs: []models.Document{doc("now", "FAST")}},
	}, 5*time.Second, quietLogger())

	docs := agg.Fetch(context.Background(), "q")
	if len(docs) != 1 || docs[0].Source != "FAST" {
		t.Fatalf("slow provider should be cut off by its own timeout, got %v", docs)
	}
}

func TestWithTimeoutPreservesNameAndPassthrough(t *testing.T) {
	p := WithTimeout(stubProvider{name: "wrapped", docs: []models.Document{doc("d", "S")}}, time.Second)
	if p.Name() != "wrapped" {
		t.Fatalf("wrapper should expose the inner provider's name, got %s", p.Name())
	}
	docs, err := p.Fetch(context.Background(), "q")
	if err != nil || len(docs) != 1 {
		t.Fatalf("wrapper should pass results through, got %v %v", docs, err)
	}
	if WithTimeout(stubProvider{name: "raw"}, 0).Name() != "raw" {
		t.Fatalf("non-positive timeout should return the provider unchanged")
	}
}

func TestFetchFallsBackWhenAllFail(t *testing.T) {
	agg := NewAggregator([]Provider{
		stubProvider{name: "a", err: errors.New("down")},
		stubProvider{name: "b", docs: nil},
	}, time.Second, quietLogger())

	docs := agg.Fetch(context.Background(), "solar power")
	if len(docs) != 2 {
		t.Fatalf("expected the 2-document fallback, got %d", len(docs))
	}
	if docs[0].Kind != models.KindArticle || docs[1].Kind != models.KindVideo {
		t.Fatalf("fallback kinds wrong: %v %v", docs[0].Kind, docs[1].Kind)
	}
	if !strings.Contains(docs[0].URL, "tbm=nws") {
		t.Fatalf("first fallback should link to a news search, got %s", docs[0].URL)
	}
	if !strings.Contains(docs[1].URL, "youtube.com/results") {
		t.Fatalf("second fallback should link to video results, got %s", docs[1].URL)
	}
	if !strings.Contains(docs[0].URL, "solar+power") {
		t.Fatalf("fallback URL should embed the query, got %s", docs[0].URL)
	}
}

func TestFetchNoProviders(t *testing.T) {
	agg := NewAggregator(nil, time.Second, quietLogger())
	docs := agg.Fetch(context.Background(), "q")
	if len(docs) != 2 {
		t.Fatalf("expected fallback pair with zero providers, got %d", len(docs))
	}
}
