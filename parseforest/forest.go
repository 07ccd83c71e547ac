// Package parseforest implements the parse-forest flattener: it walks
// a packed forest produced by an external LR/chart parser and
// collapses every term-sequence sub-node into a single terminal
// ruleProps, so the downstream k-best search can treat it as a leaf.
package parseforest

import (
	"github.com/DannyNemer/aang-sub004/semantic"
	"github.com/DannyNemer/aang-sub004/text"
)

// RuleProps is the per-sub-node payload the external parser attaches
// to every edge of the packed forest, and the shape this package
// replaces term-sequence sub-nodes' props with once flattened.
type RuleProps struct {
	Cost     float64
	Text     *text.Value
	Tense    string
	Semantic semantic.Semantic

	PersonNumber         text.FormTag
	AnaphoraPersonNumber text.FormTag

	// IsTermSequence marks a sub-node this package has not yet
	// flattened; Flatten clears it on every sub-node it replaces.
	IsTermSequence bool

	// InsertedSymIdx is set on an insertion sub-node: 0 or 1, the
	// position of the inserted child relative to Text.
	InsertedSymIdx *int

	// GramProps carries the owning rule's per-RHS-index grammatical
	// properties, consulted when flattening an ordinary or insertion
	// sub-node.
	GramProps map[int]text.GramProps
}

// Node is a forest node: a grammar symbol and the alternative
// sub-nodes (parses) that produce it over some span.
type Node struct {
	SymbolName string
	Subs       []*Subnode
}

// Subnode is one alternative production under a Node: a rule's props,
// its child node (or, via Next, a binary pair of children), the
// number of input tokens it spans, and the cumulative minimum cost a
// k-best search uses to rank alternatives.
type Subnode struct {
	RuleProps *RuleProps

	// Node is the sub-node's single child (unary) or left child
	// (binary, paired with Next). Nil for a terminal leaf.
	Node *Node

	// Next, when non-nil, makes this sub-node binary: Node is the
	// left child, Next the right child.
	Next *Node

	Span         int
	MinCost      float64
	DeletionCost float64
}
