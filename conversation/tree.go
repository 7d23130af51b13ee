package conversation

import "sync"

// TurnNode is one query exchange in a conversation. Nodes form a rooted tree:
// every node except the root has exactly one parent, and a child belongs to
// exactly one parent.
type TurnNode struct {
	Query    string
	Context  []string
	Parent   *TurnNode
	Children []*TurnNode
	Visits   int
	Score    float64
}

// AverageScore returns score/visits, or 0 for an unvisited node.
func (n *TurnNode) AverageScore() float64 {
	if n.Visits == 0 {
		return 0
	}
	return n.Score / float64(n.Visits)
}

// IsLeaf reports whether the node has no children.
func (n *TurnNode) IsLeaf() bool { return len(n.Children) == 0 }

// Stats summarizes the tree shape and the path leading to the current turn.
type Stats struct {
	TotalNodes  int      `json:"totalNodes"`
	MaxDepth    int      `json:"depth"`
	CurrentPath []string `json:"currentPath"`
}

// Tree records successive queries as a chain of turns. Appends always hang
// off the current node, so concurrent appends are serialized by the tree
// mutex to keep parent/child links causally ordered.
type Tree struct {
	mu      sync.Mutex
	root    *TurnNode
	current *TurnNode
}

// NewTree returns an empty conversation tree.
func NewTree() *Tree { return &Tree{} }

// Append records a new turn. The first append installs the root; later
// appends create a child of the current node. The new node becomes current.
func (t *Tree) Append(query string, context []string) *TurnNode {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := &TurnNode{Query: query, Context: append([]string(nil), context...)}
	if t.root == nil {
		t.root = node
		t.current = node
		return node
	}
	node.Parent = t.current
	t.current.Children = append(t.current.Children, node)
	t.current = node
	return node
}

// RecordOutcome updates a node's visit statistics with a binary reward.
func (t *Tree) RecordOutcome(node *TurnNode, succeeded bool) {
	if node == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	node.Visits++
	if succeeded {
		node.Score += 1
	}
}

// Reset discards the entire tree for a fresh conversation.
func (t *Tree) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = nil
	t.current = nil
}

// Stats walks the tree and reports node count, maximum depth (1 for a lone
// root) and the query path from root to the current node.
func (t *Tree) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root == nil {
		return Stats{CurrentPath: []string{}}
	}
	return Stats{
		TotalNodes:  countNodes(t.root),
		MaxDepth:    depth(t.root),
		CurrentPath: t.currentPathLocked(),
	}
}

func countNodes(node *TurnNode) int {
	count := 1
	for _, child := range node.Children {
		count += countNodes(child)
	}
	return count
}

func depth(node *TurnNode) int {
	if node.IsLeaf() {
		return 1
	}
	max := 0
	for _, child := range node.Children {
		if d := depth(child); d > max {
			max = d
		}
	}
	return 1 + max
}

func (t *Tree) currentPathLocked() []string {
	var path []string
	for node := t.current; node != nil; node = node.Parent {
		path = append([]string{node.Query}, path...)
	}
	return path
}
