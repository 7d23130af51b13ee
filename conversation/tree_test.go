package conversation

import (
	"reflect"
	"sync"
	"testing"
)

func TestAppendBuildsLinearPath(t *testing.T) {
	tree := NewTree()
	tree.Append("q1", nil)
	tree.Append("q2", []string{"q1"})
	tree.Append("q3", []string{"q2"})

	stats := tree.Stats()
	if stats.TotalNodes != 3 {
		t.Fatalf("expected 3 nodes, got %d", stats.TotalNodes)
	}
	if stats.MaxDepth != 3 {
		t.Fatalf("expected depth 3, got %d", stats.MaxDepth)
	}
	want := []string{"q1", "q2", "q3"}
	if !reflect.DeepEqual(stats.CurrentPath, want) {
		t.Fatalf("expected path %v, got %v", want, stats.CurrentPath)
	}
}

func TestStatsOnEmptyTree(t *testing.T) {
	tree := NewTree()
	stats := tree.Stats()
	if stats.TotalNodes != 0 || stats.MaxDepth != 0 || len(stats.CurrentPath) != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestResetClearsTree(t *testing.T) {
	tree := NewTree()
	tree.Append("q1", nil)
	tree.Append("q2", []string{"q1"})
	tree.Reset()

	stats := tree.Stats()
	if stats.TotalNodes != 0 || stats.MaxDepth != 0 || len(stats.CurrentPath) != 0 {
		t.Fatalf("expected empty stats after reset, got %+v", stats)
	}

	// The tree must be reusable after a reset.
	node := tree.Append("fresh", nil)
	if node.Parent != nil {
		t.Fatalf("first node after reset should be the root")
	}
}

func TestRecordOutcome(t *testing.T) {
	tree := NewTree()
	node := tree.Append("q1", nil)

	tree.RecordOutcome(node, true)
	if node.Visits != 1 || node.Score != 1 {
		t.Fatalf("expected visits=1 score=1, got visits=%d score=%v", node.Visits, node.Score)
	}
	if got := node.AverageScore(); got != 1 {
		t.Fatalf("expected average 1, got %v", got)
	}

	tree.RecordOutcome(node, false)
	if node.Visits != 2 || node.Score != 1 {
		t.Fatalf("expected visits=2 score=1, got visits=%d score=%v", node.Visits, node.Score)
	}
	if got := node.AverageScore(); got != 0.5 {
		t.Fatalf("expected average 0.5, got %v", got)
	}
}

func TestAverageScoreUnvisited(t *testing.T) {
	node := &TurnNode{Query: "q"}
	if got := node.AverageScore(); got != 0 {
		t.Fatalf("expected 0 for unvisited node, got %v", got)
	}
}

func TestConcurrentAppendsStayConsistent(t *testing.T) {
	tree := NewTree()
	tree.Append("root", nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree.Append("child", []string{"root"})
		}()
	}
	wg.Wait()

	stats := tree.Stats()
	if stats.TotalNodes != 51 {
		t.Fatalf("expected 51 nodes, got %d", stats.TotalNodes)
	}
	// Appends chain off the current node, so the path length equals the depth.
	if len(stats.CurrentPath) != stats.MaxDepth {
		t.Fatalf("path length %d disagrees with depth %d", len(stats.CurrentPath), stats.MaxDepth)
	}
}
