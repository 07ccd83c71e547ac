package grammar

import (
	"testing"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
)

func buildRepoAndMine(t *testing.T) (*symbol.Table, *symbol.Symbol, *symbol.Symbol) {
	t.Helper()
	tab := symbol.NewTable()
	repos, err := NewInvariableTermSet(tab, InvariableOpts{
		Name:          "[repos]",
		AcceptedTerms: []string{"repos", "repositories"},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error building [repos]: %v", err)
	}
	mine, err := NewPronoun(tab, PronounOpts{
		Name:  "[mine]",
		Forms: PronounForms{Nom: "my", Obj: "mine"},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error building [mine]: %v", err)
	}
	return tab, repos, mine
}

func TestBinarySequenceSymbol_ResultTypeIsNonInvariableMember(t *testing.T) {
	tab, repos, mine := buildRepoAndMine(t)
	sym, err := BinarySequenceSymbol(tab, SymbolItem(mine), SymbolItem(repos), BinaryOpts{}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.TermSequenceType != symbol.TypePronoun {
		t.Fatalf("expected resulting type %q, got %q", symbol.TypePronoun, sym.TermSequenceType)
	}
	if !sym.Flags.IsBinarySymbol {
		t.Fatal("expected IsBinarySymbol flag set")
	}
	if len(sym.Rules) != 1 || len(sym.Rules[0].RHS) != 2 {
		t.Fatalf("expected a single 2-symbol RHS rule, got %+v", sym.Rules)
	}
}

func TestBinarySequenceSymbol_RejectsTwoNonInvariableItems(t *testing.T) {
	tab, _, mine := buildRepoAndMine(t)
	verb, err := NewVerb(tab, VerbOpts{
		Name:  "[like]",
		Forms: VerbFormsTermSet{OneSg: "like", ThreeSg: "likes", Pl: "like", Past: "liked"},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error building [like]: %v", err)
	}
	_, err = BinarySequenceSymbol(tab, SymbolItem(mine), SymbolItem(verb), BinaryOpts{}, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected an error pairing two non-invariable items")
	}
	ierr, ok := err.(*ierrors.Error)
	if !ok || ierr.Kind != ierrors.KindIllFormedTermSequence {
		t.Fatalf("expected KindIllFormedTermSequence, got %v", err)
	}
}

func TestBinarySequenceSymbol_RejectsRawTerminalMember(t *testing.T) {
	tab, repos, _ := buildRepoAndMine(t)
	_, err := BinarySequenceSymbol(tab, TermItem("my"), SymbolItem(repos), BinaryOpts{}, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected an error when a pair member is a raw terminal string")
	}
}

func TestBinarySequenceSymbol_DedupesStructurallyEqualPairs(t *testing.T) {
	tab, repos, mine := buildRepoAndMine(t)
	first, err := BinarySequenceSymbol(tab, SymbolItem(mine), SymbolItem(repos), BinaryOpts{}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BinarySequenceSymbol(tab, SymbolItem(mine), SymbolItem(repos), BinaryOpts{}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the second structurally-identical pair request to reuse the first binary symbol")
	}
}

func TestNewTermSequence_AcceptsTermSequenceSymbolsOfMatchingType(t *testing.T) {
	tab, repos, _ := buildRepoAndMine(t)
	more, err := NewInvariableTermSet(tab, InvariableOpts{
		Name:          "[projects]",
		AcceptedTerms: []string{"projects"},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error building [projects]: %v", err)
	}
	sym, err := NewTermSequence(tab, TermSequenceOpts{
		Name:          "[repo-noun]",
		Type:          symbol.TypeInvariable,
		AcceptedTerms: []Item{SymbolItem(repos), SymbolItem(more)},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sym.Flags.IsTermSequence {
		t.Fatal("expected IsTermSequence flag set")
	}
	if sym.DefaultText != repos.DefaultText {
		t.Fatal("expected defaultText to come from the first accepted item")
	}
	if len(sym.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sym.Rules))
	}
	for _, r := range sym.Rules {
		if r.Text != nil {
			t.Fatal("expected an ordinary term-sequence member rule to carry no override text")
		}
	}
}

func TestNewTermSequence_RejectsItemTypeMismatch(t *testing.T) {
	tab, _, mine := buildRepoAndMine(t)
	_, err := NewTermSequence(tab, TermSequenceOpts{
		Name:          "[bad]",
		Type:          symbol.TypeVerb,
		AcceptedTerms: []Item{SymbolItem(mine)},
	}, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected an error for an accepted item whose type does not match the sequence")
	}
}

func TestNewTermSequence_RejectsTerminalStringInNonInvariableSequence(t *testing.T) {
	tab, _, _ := buildRepoAndMine(t)
	_, err := NewTermSequence(tab, TermSequenceOpts{
		Name:          "[bad]",
		Type:          symbol.TypePronoun,
		AcceptedTerms: []Item{TermItem("x")},
	}, ierrors.DefSite{})
	if err == nil {
		t.Fatal("expected an error for a raw terminal string in a non-invariable sequence")
	}
}

func TestNewTermSequence_SubstitutionCarriesDefaultTextAsOverride(t *testing.T) {
	tab, repos, mine := buildRepoAndMine(t)
	sym, err := NewTermSequence(tab, TermSequenceOpts{
		Name:             "[repo-noun]",
		Type:             symbol.TypeInvariable,
		AcceptedTerms:    []Item{SymbolItem(repos)},
		SubstitutedTerms: []SubstitutedItem{{Item: SymbolItem(mine), CostPenalty: 1}},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var subRule *symbol.Rule
	for _, r := range sym.Rules {
		if r.Text != nil {
			subRule = r
		}
	}
	if subRule == nil {
		t.Fatal("expected a substitution rule carrying override text")
	}
	if subRule.Text != sym.DefaultText {
		t.Fatal("expected the substitution rule's text to be the sequence's defaultText")
	}
	if subRule.Cost != 1 {
		t.Fatalf("expected substitution cost 1, got %v", subRule.Cost)
	}
}

func TestNewTermSequence_NormalizesVerbPresentAndPastToVerb(t *testing.T) {
	tab, _, _ := buildRepoAndMine(t)
	verb, err := NewVerb(tab, VerbOpts{
		Name:  "[like]",
		Forms: VerbFormsTermSet{OneSg: "like", ThreeSg: "likes", Pl: "like", Past: "liked"},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error building [like]: %v", err)
	}
	sym, err := NewTermSequence(tab, TermSequenceOpts{
		Name:          "[verb-alias]",
		Type:          symbol.TypeVerbPresent,
		AcceptedTerms: []Item{SymbolItem(verb)},
	}, ierrors.DefSite{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.TermSequenceType != symbol.TypeVerb {
		t.Fatalf("expected normalized type %q, got %q", symbol.TypeVerb, sym.TermSequenceType)
	}
}
