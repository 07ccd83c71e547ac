// Package example builds a small grammar entirely through the
// program API the grammar package exposes, standing in for a
// "user-written grammar script" per the grammar definition API's
// external interface. It is consumed by cmd/aang build as a
// demonstration target, since this module accepts no textual grammar
// DSL of its own.
package example

import (
	"github.com/DannyNemer/aang-sub004/grammar"
	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/semantic"
	"github.com/DannyNemer/aang-sub004/text"
)

// Build constructs a tiny repository-query grammar: a subject
// pronoun, a present/past verb, and an invariable object noun, e.g.
// "repos I like" / "repos I liked". It returns the populated symbol
// table plus the entity and integer-symbol tables grammar.Compile
// expects, or the first builder error encountered.
func Build() (*symbol.Table, []grammar.EntityEntry, []grammar.IntSymbolEntry, error) {
	tab := symbol.NewTable()
	tab.SetStart("[start]")
	site := ierrors.DefSite{File: "example/example.go"}

	if _, err := grammar.NewPronoun(tab, grammar.PronounOpts{
		Name:  "[1-sg]",
		Forms: grammar.PronounForms{Nom: "i", Obj: "me"},
	}, site); err != nil {
		return nil, nil, nil, err
	}

	if _, err := grammar.NewVerb(tab, grammar.VerbOpts{
		Name: "[like]",
		Forms: grammar.VerbFormsTermSet{
			OneSg: "like", ThreeSg: "likes", Pl: "like", Past: "liked",
		},
	}, site); err != nil {
		return nil, nil, nil, err
	}

	if _, err := grammar.NewInvariableTermSet(tab, grammar.InvariableOpts{
		Name:          "[repos]",
		AcceptedTerms: []string{"repos", "repositories"},
		SubstitutedTerms: []grammar.SubstitutedTerm{
			{Term: "repo", CostPenalty: 0.5},
		},
	}, site); err != nil {
		return nil, nil, nil, err
	}

	// [clause] -> [1-sg] [like], conjugating the verb to the subject's
	// person-number via gramProps[1].
	clauseRule, err := grammar.NewNonterminalRule(tab, grammar.NonterminalOpts{
		RHS: []symbol.Name{"[1-sg]", "[like]"},
		GramProps: map[int]text.GramProps{
			1: {Form: text.OneSg},
		},
		Semantic: semantic.Semantic{semantic.Function("likes", 1, 0,
			semantic.Argument("me", 0))},
		SemanticIsReduced: true,
	}, site)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := tab.AddRule("[clause]", clauseRule, site); err != nil {
		return nil, nil, nil, err
	}

	startRule, err := grammar.NewNonterminalRule(tab, grammar.NonterminalOpts{
		RHS: []symbol.Name{"[repos]", "[clause]"},
	}, site)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := tab.AddRule("[start]", startRule, site); err != nil {
		return nil, nil, nil, err
	}

	entities := []grammar.EntityEntry{
		{ID: "repo:aang", Text: "aang", Category: "repo"},
	}
	intSymbols := []grammar.IntSymbolEntry{
		{Name: "[int]", Min: 1, Max: 100},
	}

	return tab, entities, intSymbols, nil
}
