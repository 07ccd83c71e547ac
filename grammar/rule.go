// Package grammar implements the grammar intermediate representation
// builders, the term-sequence builder, the pruning/diversification/
// stripping passes, and the driver that orchestrates them into a
// compiled artifact.
package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/semantic"
	"github.com/DannyNemer/aang-sub004/text"
)

var lowerCaser = cases.Lower(language.English)

// TerminalOpts is the option schema for a terminal rule, validated at
// the builder call site. Using an explicit, enumerated option struct
// here instead of a loosely-typed options map keeps every accepted
// field and its validation visible at the call site.
type TerminalOpts struct {
	RHS           string
	Text          *text.Value
	Semantic      semantic.Semantic
	IsPlaceholder bool
	IsStopWord    bool
	IsSubstitution bool
	InsertionCost *float64
	Tense         string
	CostPenalty   float64
}

// NewTerminalRule validates opts and builds a terminal *symbol.Rule.
func NewTerminalRule(opts TerminalOpts, site ierrors.DefSite) (*symbol.Rule, error) {
	rhs := lowerCaser.String(opts.RHS)

	if err := validateTerminalToken(rhs); err != nil {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTerminal, Cause: err, Site: site, Offending: opts}
	}

	isEmpty := rhs == "<empty>"
	if isEmpty && (opts.Text != nil || opts.Semantic != nil || opts.InsertionCost != nil) {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTerminal, Cause: errEmptyRuleCarriesExtra, Site: site, Offending: opts}
	}
	if (opts.IsStopWord || opts.IsPlaceholder) && (opts.Text != nil || opts.InsertionCost != nil) {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTerminal, Cause: errStopWordCarriesText, Site: site, Offending: opts}
	}

	return &symbol.Rule{
		IsTerminal:     true,
		RHS:            []string{rhs},
		Text:           opts.Text,
		Semantic:       opts.Semantic,
		IsPlaceholder:  opts.IsPlaceholder,
		IsStopWord:     opts.IsStopWord,
		IsSubstitution: opts.IsSubstitution,
		InsertionCost:  opts.InsertionCost,
		Tense:          opts.Tense,
		Cost:           semantic.SumCosts(opts.Semantic) + opts.CostPenalty,
	}, nil
}

// validateTerminalToken enforces that a terminal RHS token contains
// no whitespace other than single inter-word spaces,
// and every non-space rune is a letter, an apostrophe, one of the two
// bracket characters, or part of a non-negative integer literal with
// no leading zero.
func validateTerminalToken(tok string) error {
	if tok == "" {
		return errInvalidTerminalToken
	}
	words := strings.Split(tok, " ")
	for _, w := range words {
		if w == "" {
			// A leading, trailing, or doubled space produced an empty
			// word after splitting: consecutive/edge whitespace.
			return errInvalidWhitespace
		}
	}
	for _, w := range words {
		if err := validateTerminalWord(w); err != nil {
			return err
		}
	}
	return nil
}

func validateTerminalWord(w string) error {
	if isIntegerLiteral(w) {
		return nil
	}
	for _, r := range w {
		if r == '\'' || r == '<' || r == '>' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsSpace(r) {
			return errInvalidWhitespace
		}
		return errInvalidTerminalToken
	}
	return nil
}

func isIntegerLiteral(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	if len(w) > 1 && w[0] == '0' {
		return false
	}
	return true
}

// NonterminalOpts is the option schema for a nonterminal rule.
type NonterminalOpts struct {
	RHS                  []symbol.Name
	GramProps            map[int]text.GramProps
	PersonNumber         text.FormTag
	AnaphoraPersonNumber text.FormTag
	Text                 *text.Value
	NoInsert             bool
	NoInsertionIndexes    []int
	TranspositionCost     *float64
	Semantic              semantic.Semantic
	SemanticIsReduced     bool
	IsTermSequence        bool
	CostPenalty           float64
}

// NewNonterminalRule validates opts and builds a nonterminal
// *symbol.Rule. tab is consulted to verify gramProps reachability
// and, when IsTermSequence is set, that every RHS symbol is itself a
// term sequence.
func NewNonterminalRule(tab *symbol.Table, opts NonterminalOpts, site ierrors.DefSite) (*symbol.Rule, error) {
	if len(opts.RHS) < 1 || len(opts.RHS) > 2 {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errRHSLengthOutOfRange, Site: site, Offending: opts}
	}
	if opts.TranspositionCost != nil && len(opts.RHS) != 2 {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errTranspositionNeedsBinary, Site: site, Offending: opts}
	}

	if opts.IsTermSequence {
		for _, rhsName := range opts.RHS {
			rhsSym, ok := tab.Symbol(rhsName)
			if !ok || !rhsSym.Flags.IsTermSequence {
				return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errTermSequenceRHSNotSeq, Site: site, Offending: rhsName}
			}
		}
	}

	normalizedProps := make(map[int]text.GramProps, len(opts.GramProps))
	for idx, gp := range opts.GramProps {
		if idx < 0 || idx >= len(opts.RHS) {
			return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errGramPropUnsupported, Site: site, Offending: idx}
		}
		normGP := text.GramProps{AcceptedTense: gp.AcceptedTense, Form: text.NormalizeTag(gp.Form)}
		if normGP.Form != "" && !canProduceFormTag(tab, opts.RHS[idx], normGP.Form, map[symbol.Name]bool{}) {
			return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errGramPropUnsupported, Site: site, Offending: normGP}
		}
		if normGP.AcceptedTense != "" && !canProduceFormTag(tab, opts.RHS[idx], text.FormTag(normGP.AcceptedTense), map[symbol.Name]bool{}) {
			return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errGramPropUnsupported, Site: site, Offending: normGP}
		}
		if opts.Text != nil && normGP.Form != "" {
			return nil, &ierrors.Error{Kind: ierrors.KindIllFormedNonterminal, Cause: errSubstitutionWithForm, Site: site, Offending: normGP}
		}
		normalizedProps[idx] = normGP
	}

	rhs := make([]string, len(opts.RHS))
	for i, n := range opts.RHS {
		rhs[i] = string(n)
	}

	return &symbol.Rule{
		IsTerminal:            false,
		RHS:                   rhs,
		GramProps:             normalizedProps,
		PersonNumber:          opts.PersonNumber,
		AnaphoraPersonNumber:  opts.AnaphoraPersonNumber,
		Text:                  opts.Text,
		NoInsert:              opts.NoInsert,
		NoInsertionIndexes:    opts.NoInsertionIndexes,
		TranspositionCost:     opts.TranspositionCost,
		Semantic:              opts.Semantic,
		SemanticIsReduced:     opts.SemanticIsReduced,
		IsTermSequence:        opts.IsTermSequence,
		Cost:                  semantic.SumCosts(opts.Semantic) + opts.CostPenalty,
	}, nil
}

// canProduceFormTag recursively checks whether rhs's subgrammar
// contains at least one terminal rule whose text supports tag,
// descending through nested term sequences. A visited set guards
// against the rule graph's cycles (invariant 5).
func canProduceFormTag(tab *symbol.Table, rhs symbol.Name, tag text.FormTag, visited map[symbol.Name]bool) bool {
	if visited[rhs] {
		return false
	}
	visited[rhs] = true

	sym, ok := tab.Symbol(rhs)
	if !ok {
		return false
	}
	for _, r := range sym.Rules {
		if r.IsTerminal {
			if r.Text == nil {
				continue
			}
			if r.Text.IsForms() {
				if _, has := r.Text.Forms()[tag]; has {
					return true
				}
			}
			continue
		}
		for _, childName := range r.RHS {
			if canProduceFormTag(tab, symbol.Name(childName), tag, visited) {
				return true
			}
		}
	}
	return false
}

// genRuleName formats a diagnostic-friendly string for a rule,
// primarily for tests and CLI reporting.
func genRuleName(lhs symbol.Name, r *symbol.Rule) string {
	return fmt.Sprintf("%s -> %s", lhs, strings.Join(r.RHS, " "))
}
