package websearch

import (
	"testing"
	"time"

	"github.com/avaldezm/newsight/websearch/brave"
	"github.com/avaldezm/newsight/websearch/serper"
)

func TestNewSearcherAppliesTimeout(t *testing.T) {
	s, err := NewSearcher(SerperProvider, "k", 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp, ok := s.(serper.Search)
	if !ok {
		t.Fatalf("expected a serper searcher, got %T", s)
	}
	if sp.Client == nil || sp.Client.Timeout != 3*time.Second {
		t.Fatalf("serper client should carry the configured timeout, got %+v", sp.Client)
	}

	b, err := NewSearcher(BraveProvider, "k", 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bp, ok := b.(brave.Search)
	if !ok {
		t.Fatalf("expected a brave searcher, got %T", b)
	}
	if bp.Client == nil || bp.Client.Timeout != 3*time.Second {
		t.Fatalf("brave client should carry the configured timeout, got %+v", bp.Client)
	}
}

func TestNewSearcherUnknownProvider(t *testing.T) {
	if _, err := NewSearcher(Provider("bing"), "k", time.Second); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
