package symbol

import (
	"testing"

	"github.com/DannyNemer/aang-sub004/ierrors"
)

func TestTable_NewSymbol_DuplicateNameFails(t *testing.T) {
	tab := NewTable()
	if _, err := tab.NewSymbol("[np]", ierrors.DefSite{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := tab.NewSymbol("[np]", ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected DuplicateSymbol error")
	}
	ierr, ok := err.(*ierrors.Error)
	if !ok || ierr.Kind != ierrors.KindDuplicateSymbol {
		t.Fatalf("expected KindDuplicateSymbol, got %v", err)
	}
}

func TestTable_AddRule_DuplicateRHSFails(t *testing.T) {
	tab := NewTable()
	tab.NewSymbol("[np]", ierrors.DefSite{})
	r1 := &Rule{IsTerminal: true, RHS: []string{"dog"}}
	if err := tab.AddRule("[np]", r1, ierrors.DefSite{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2 := &Rule{IsTerminal: true, RHS: []string{"dog"}}
	err := tab.AddRule("[np]", r2, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected DuplicateRule error")
	}
	if ierr := err.(*ierrors.Error); ierr.Kind != ierrors.KindDuplicateRule {
		t.Fatalf("expected KindDuplicateRule, got %v", ierr.Kind)
	}
}

func TestTable_AddRule_SealedSymbolRejectsFurtherRules(t *testing.T) {
	tab := NewTable()
	sym, _ := tab.NewSymbol("[verb]", ierrors.DefSite{})
	sym.Seal()
	err := tab.AddRule("[verb]", &Rule{IsTerminal: true, RHS: []string{"run"}}, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected CompletedTermSequence error")
	}
	if ierr := err.(*ierrors.Error); ierr.Kind != ierrors.KindCompletedTermSequence {
		t.Fatalf("expected KindCompletedTermSequence, got %v", ierr.Kind)
	}
}

func TestTable_RemoveSymbol(t *testing.T) {
	tab := NewTable()
	tab.NewSymbol("[a]", ierrors.DefSite{})
	tab.NewSymbol("[b]", ierrors.DefSite{})
	tab.RemoveSymbol("[a]")
	if _, ok := tab.Symbol("[a]"); ok {
		t.Fatal("expected [a] to be removed")
	}
	if tab.Len() != 1 {
		t.Fatalf("expected 1 symbol remaining, got %d", tab.Len())
	}
}

func TestTable_SortedNames_Alphabetical(t *testing.T) {
	tab := NewTable()
	tab.NewSymbol("[z]", ierrors.DefSite{})
	tab.NewSymbol("[a]", ierrors.DefSite{})
	tab.NewSymbol("[m]", ierrors.DefSite{})
	names := tab.SortedNames()
	want := []Name{"[a]", "[m]", "[z]"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestRule_StructuralHash_EqualForEquivalentRulesIgnoringLine(t *testing.T) {
	r1 := &Rule{IsTerminal: true, RHS: []string{"dog"}, Cost: 1, Line: 10}
	r2 := &Rule{IsTerminal: true, RHS: []string{"dog"}, Cost: 1, Line: 99}
	if r1.StructuralHash() != r2.StructuralHash() {
		t.Fatal("expected structural hashes to match, differing only in Line")
	}
}

func TestRule_StructuralHash_DiffersForDifferentRHS(t *testing.T) {
	r1 := &Rule{IsTerminal: true, RHS: []string{"dog"}}
	r2 := &Rule{IsTerminal: true, RHS: []string{"cat"}}
	if r1.StructuralHash() == r2.StructuralHash() {
		t.Fatal("expected structural hashes to differ")
	}
}
