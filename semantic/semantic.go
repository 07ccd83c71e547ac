// Package semantic models the semantic trees a grammar rule attaches
// to its parse, and the cost bookkeeping and total order the grammar
// compiler and k-best search rely on.
//
// A Node is either a Function (a named, fixed-arity relation with
// child Nodes) or an Argument (a leaf naming an entity or a
// placeholder). A Semantic is a top-level list of Nodes, as produced
// by a single rule; it is "reduced" iff every Function in it has all
// of its required children supplied.
package semantic

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a semantic tree node: a Function or an Argument. Exactly
// one of the two shapes is populated, selected by IsFunction.
type Node struct {
	Name string
	Cost float64

	// IsFunction distinguishes Function(name, arity, cost, children)
	// from Argument(name|id, cost).
	IsFunction bool

	// Arity is the number of children a Function requires to be
	// considered filled (reduced). Unused for Argument nodes.
	Arity int

	Children []Node
}

// Argument builds a leaf Node naming an entity or input-derived id.
func Argument(name string, cost float64) Node {
	return Node{Name: name, Cost: cost}
}

// Function builds an interior Node with a required arity.
func Function(name string, arity int, cost float64, children ...Node) Node {
	return Node{Name: name, Arity: arity, Cost: cost, IsFunction: true, Children: children}
}

// IsFilled reports whether a Function node has all of its required
// children supplied. Argument nodes are always filled.
func (n Node) IsFilled() bool {
	if !n.IsFunction {
		return true
	}
	return len(n.Children) >= n.Arity
}

// Semantic is a top-level list of Nodes produced by a single rule.
type Semantic []Node

// IsReduced reports whether every top-level entry is an Argument, or
// a Function whose required children are all supplied.
func IsReduced(s Semantic) bool {
	for _, n := range s {
		if n.IsFunction && !n.IsFilled() {
			return false
		}
	}
	return true
}

// SumCosts adds every node's own cost plus its descendants',
// recursively, across the whole list.
func SumCosts(s Semantic) float64 {
	var total float64
	for _, n := range s {
		total += sumNodeCost(n)
	}
	return total
}

func sumNodeCost(n Node) float64 {
	total := n.Cost
	for _, c := range n.Children {
		total += sumNodeCost(c)
	}
	return total
}

// Compare defines a total order over Semantics for deterministic
// canonicalization: shorter lists sort first; otherwise nodes compare
// element-wise by name, then by function-vs-argument kind, then by
// arity, then recursively by children, then by cost.
func Compare(a, b Semantic) int {
	if d := len(a) - len(b); d != 0 {
		return sign(d)
	}
	for i := range a {
		if c := compareNode(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareNode(a, b Node) int {
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	if a.IsFunction != b.IsFunction {
		if !a.IsFunction {
			return -1
		}
		return 1
	}
	if a.Arity != b.Arity {
		return sign(a.Arity - b.Arity)
	}
	if c := Compare(Semantic(a.Children), Semantic(b.Children)); c != 0 {
		return c
	}
	switch {
	case a.Cost < b.Cost:
		return -1
	case a.Cost > b.Cost:
		return 1
	default:
		return 0
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// DebugKey returns a canonical string encoding of s, stable across
// equal semantics and distinct across unequal ones, for code outside
// this package that needs to hash or compare a Semantic without a
// full recursive Compare (the binary-symbol structural-equality check
// in grammar/symbol).
func (s Semantic) DebugKey() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, n := range s {
		b.WriteString(n.debugKey())
		b.WriteByte(',')
	}
	b.WriteByte(']')
	return b.String()
}

func (n Node) debugKey() string {
	if !n.IsFunction {
		return fmt.Sprintf("a(%s,%g)", n.Name, n.Cost)
	}
	return fmt.Sprintf("f(%s,%d,%g,%s)", n.Name, n.Arity, n.Cost, Semantic(n.Children).DebugKey())
}

// SortSemantics sorts a slice of Semantics by Compare, in place.
func SortSemantics(list []Semantic) {
	sort.Slice(list, func(i, j int) bool {
		return Compare(list[i], list[j]) < 0
	})
}
