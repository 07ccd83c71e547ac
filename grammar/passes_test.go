package grammar

import (
	"testing"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/semantic"
)

func TestPruneSemanticRequirements_RemovesUnreducibleRule(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	tab.NewSymbol("[np]", ierrors.DefSite{})

	// [np] never produces a reduced semantic (an unfilled Function).
	tab.AddRule("[np]", &symbol.Rule{
		IsTerminal: true, RHS: []string{"dog"},
		Semantic: semantic.Semantic{semantic.Function("f", 1, 0)},
	}, ierrors.DefSite{})

	tab.AddRule("[s]", &symbol.Rule{
		IsTerminal: false, RHS: []string{"[np]"},
	}, ierrors.DefSite{})

	removed := PruneSemanticRequirements(tab)
	if len(removed) != 2 {
		t.Fatalf("expected 2 rules removed (np's rule, then s's rule), got %d", len(removed))
	}
	npSym, _ := tab.Symbol("[np]")
	if len(npSym.Rules) != 0 {
		t.Fatalf("expected [np] to have no rules left, got %d", len(npSym.Rules))
	}
}

func TestPruneSemanticRequirements_KeepsRuleWithReducedSemantic(t *testing.T) {
	tab := symbol.NewTable()
	tab.NewSymbol("[np]", ierrors.DefSite{})
	tab.AddRule("[np]", &symbol.Rule{
		IsTerminal: true, RHS: []string{"dog"},
		Semantic: semantic.Semantic{semantic.Argument("dog", 0)},
	}, ierrors.DefSite{})

	removed := PruneSemanticRequirements(tab)
	if len(removed) != 0 {
		t.Fatalf("expected no rules removed, got %d", len(removed))
	}
}

func TestPruneUnreachable_RemovesSymbolsNotReachableFromStart(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	tab.NewSymbol("[orphan]", ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{IsTerminal: true, RHS: []string{"go"}}, ierrors.DefSite{})
	tab.AddRule("[orphan]", &symbol.Rule{IsTerminal: true, RHS: []string{"nope"}}, ierrors.DefSite{})

	removed := PruneUnreachable(tab)
	if len(removed) != 1 {
		t.Fatalf("expected 1 symbol removed, got %d", len(removed))
	}
	if _, ok := tab.Symbol("[orphan]"); ok {
		t.Fatal("expected [orphan] to be removed")
	}
	if _, ok := tab.Symbol("[s]"); !ok {
		t.Fatal("expected [s] to remain")
	}
}

func TestPruneUnreachable_RemovesRulelessSymbol(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	tab.NewSymbol("[empty]", ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{IsTerminal: false, RHS: []string{"[empty]"}}, ierrors.DefSite{})

	removed := PruneUnreachable(tab)
	if len(removed) == 0 {
		t.Fatal("expected at least the ruleless [empty] symbol removed")
	}
	if _, ok := tab.Symbol("[empty]"); ok {
		t.Fatal("expected [empty] to be removed for having no rules")
	}
}

func TestDiversifyCosts_BreaksTiesAscending(t *testing.T) {
	tab := symbol.NewTable()
	tab.NewSymbol("[np]", ierrors.DefSite{})
	tab.AddRule("[np]", &symbol.Rule{IsTerminal: true, RHS: []string{"a"}, Cost: 1}, ierrors.DefSite{})
	tab.AddRule("[np]", &symbol.Rule{IsTerminal: true, RHS: []string{"b"}, Cost: 1}, ierrors.DefSite{})

	if err := DiversifyCosts(tab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, _ := tab.Symbol("[np]")
	if sym.Rules[0].Cost == sym.Rules[1].Cost {
		t.Fatal("expected tied costs to be diversified")
	}
	if sym.Rules[0].Cost > sym.Rules[1].Cost {
		t.Fatal("expected ascending cost order after diversification")
	}
}

func TestDiversifyCosts_FailsAfterEditRuleMarkers(t *testing.T) {
	tab := symbol.NewTable()
	tab.NewSymbol("[np]", ierrors.DefSite{})
	idx := 0
	tab.AddRule("[np]", &symbol.Rule{IsTerminal: true, RHS: []string{"a"}, InsertedSymIdx: &idx}, ierrors.DefSite{})

	err := DiversifyCosts(tab)
	if err == nil {
		t.Fatal("expected an OutOfSequence error")
	}
	if ierr := err.(*ierrors.Error); ierr.Kind != ierrors.KindOutOfSequence {
		t.Fatalf("expected KindOutOfSequence, got %v", ierr.Kind)
	}
}

func TestStripTempProperties_RemovesInternalFieldsAndEmptyRules(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	safe := true
	tab.AddRule("[s]", &symbol.Rule{
		IsTerminal: true, RHS: []string{"go"},
		SemanticSafe: &safe, NotRecursive: true, RHSTermSequenceIndexes: []int{0},
	}, ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{IsTerminal: false, RHS: []string{"<empty>"}}, ierrors.DefSite{})

	if err := StripTempProperties(tab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, _ := tab.Symbol("[s]")
	if len(sym.Rules) != 1 {
		t.Fatalf("expected the <empty> rule stripped, got %d rules", len(sym.Rules))
	}
	r := sym.Rules[0]
	if r.SemanticSafe != nil || r.NotRecursive || r.RHSTermSequenceIndexes != nil {
		t.Fatal("expected internal-only fields cleared")
	}
}
