package parseforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/text"
)

func leaf(t *testing.T, v text.Value) *Node {
	t.Helper()
	return &Node{
		SymbolName: "leaf",
		Subs: []*Subnode{
			{RuleProps: &RuleProps{Text: &v}, Span: 1},
		},
	}
}

func TestFlatten_OrdinaryBinaryMergesChildText(t *testing.T) {
	left := text.NewInvariable("the")
	right := text.NewInvariable("dog")
	n := &Node{
		SymbolName: "[np]",
		Subs: []*Subnode{
			{
				RuleProps: &RuleProps{IsTermSequence: true, GramProps: map[int]text.GramProps{}},
				Node:      leaf(t, left),
				Next:      leaf(t, right),
				Span:      2,
				MinCost:   1,
			},
		},
	}

	require.NoError(t, Flatten(n))
	require.Len(t, n.Subs, 1)
	rp := n.Subs[0].RuleProps
	assert.False(t, rp.IsTermSequence)
	assert.True(t, rp.Text.IsSequence() || rp.Text.IsInvariable())
}

func TestFlatten_SubstitutionKeepsParentText(t *testing.T) {
	override := text.NewInvariable("override")
	childVal := text.NewInvariable("child")
	n := &Node{
		SymbolName: "[x]",
		Subs: []*Subnode{
			{
				RuleProps: &RuleProps{IsTermSequence: true, Text: &override},
				Node:      leaf(t, childVal),
				Span:      1,
			},
		},
	}

	require.NoError(t, Flatten(n))
	require.Len(t, n.Subs, 1)
	assert.Equal(t, "override", n.Subs[0].RuleProps.Text.String())
}

func TestFlatten_InsertionMergesAtIndex(t *testing.T) {
	parentText := text.NewInvariable("will")
	childVal := text.NewInvariable("not")
	idx := 1
	n := &Node{
		SymbolName: "[vp]",
		Subs: []*Subnode{
			{
				RuleProps: &RuleProps{
					IsTermSequence: true, Text: &parentText, InsertedSymIdx: &idx,
					GramProps: map[int]text.GramProps{},
				},
				Node: leaf(t, childVal),
				Span: 1,
			},
		},
	}

	require.NoError(t, Flatten(n))
	require.Len(t, n.Subs, 1)
	rp := n.Subs[0].RuleProps
	assert.Nil(t, rp.InsertedSymIdx)
	assert.False(t, rp.IsTermSequence)
}

func TestFlatten_AmbiguousSingleTokenNoDeletionFails(t *testing.T) {
	v1 := text.NewInvariable("a")
	v2 := text.NewInvariable("b")
	n := &Node{
		SymbolName: "[amb]",
		Subs: []*Subnode{
			{RuleProps: &RuleProps{IsTermSequence: true, Text: &v1}, Span: 1, MinCost: 1},
			{RuleProps: &RuleProps{IsTermSequence: true, Text: &v2}, Span: 1, MinCost: 2},
		},
	}

	err := Flatten(n)
	require.Error(t, err)
	ierr, ok := err.(*ierrors.Error)
	require.True(t, ok)
	assert.Equal(t, ierrors.KindUnexpectedAmbiguity, ierr.Kind)
}

func TestFlatten_AmbiguousWithDeletionCostChoosesCheapest(t *testing.T) {
	v1 := text.NewInvariable("a")
	v2 := text.NewInvariable("b")
	n := &Node{
		SymbolName: "[amb]",
		Subs: []*Subnode{
			{RuleProps: &RuleProps{IsTermSequence: true, Text: &v1}, Span: 1, MinCost: 2, DeletionCost: 1},
			{RuleProps: &RuleProps{IsTermSequence: true, Text: &v2}, Span: 1, MinCost: 1, DeletionCost: 1},
		},
	}

	require.NoError(t, Flatten(n))
	require.Len(t, n.Subs, 1)
	assert.Equal(t, "b", n.Subs[0].RuleProps.Text.String())
}

func TestFlatten_ChildCarryingSemanticIsIllFormed(t *testing.T) {
	childVal := text.NewInvariable("x")
	n := &Node{
		SymbolName: "[np]",
		Subs: []*Subnode{
			{
				RuleProps: &RuleProps{IsTermSequence: true, GramProps: map[int]text.GramProps{}},
				Node: &Node{
					SymbolName: "leaf",
					Subs: []*Subnode{
						{RuleProps: &RuleProps{Text: &childVal, PersonNumber: text.OneSg}},
					},
				},
				Span: 1,
			},
		},
	}

	err := Flatten(n)
	require.Error(t, err)
	ierr, ok := err.(*ierrors.Error)
	require.True(t, ok)
	assert.Equal(t, ierrors.KindIllFormedChildSubnode, ierr.Kind)
}
