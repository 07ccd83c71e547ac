package grammar

import (
	"testing"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/semantic"
)

func TestCompile_ProducesSortedArtifact(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	tab.NewSymbol("[np]", ierrors.DefSite{})
	tab.AddRule("[np]", &symbol.Rule{
		IsTerminal: true, RHS: []string{"dog"},
		Semantic:          semantic.Semantic{semantic.Argument("dog", 0)},
		SemanticIsReduced: true,
	}, ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{
		IsTerminal: false, RHS: []string{"[np]"},
		Semantic:          semantic.Semantic{semantic.Argument("dog", 0)},
		SemanticIsReduced: true,
	}, ierrors.DefSite{})

	artifact, report, err := Compile(tab, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RunID == "" {
		t.Fatal("expected a non-empty RunID")
	}
	if len(artifact.SymbolNames) != 2 {
		t.Fatalf("expected 2 symbols remaining, got %d", len(artifact.SymbolNames))
	}
	for i := 1; i < len(artifact.SymbolNames); i++ {
		if artifact.SymbolNames[i-1] >= artifact.SymbolNames[i] {
			t.Fatal("expected symbol names sorted alphabetically")
		}
	}
}

func TestCompile_PrunesSemanticallyUnproductiveSubtree(t *testing.T) {
	tab := symbol.NewTable()
	tab.SetStart("[s]")
	tab.NewSymbol("[s]", ierrors.DefSite{})
	tab.NewSymbol("[dead]", ierrors.DefSite{})
	tab.AddRule("[dead]", &symbol.Rule{
		IsTerminal: true, RHS: []string{"x"},
		Semantic: semantic.Semantic{semantic.Function("f", 1, 0)},
	}, ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{IsTerminal: false, RHS: []string{"[dead]"}}, ierrors.DefSite{})
	tab.AddRule("[s]", &symbol.Rule{IsTerminal: true, RHS: []string{"go"}}, ierrors.DefSite{})

	artifact, report, err := Compile(tab, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected at least one pruning warning")
	}
	if _, ok := artifact.Rules["[dead]"]; ok {
		t.Fatal("expected [dead] pruned from the artifact")
	}
}
