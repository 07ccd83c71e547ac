package grammar

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
)

// ancestorRef names a rule, together with the symbol that owns it,
// found while walking up from one of the rule's RHS symbols.
type ancestorRef struct {
	owner symbol.Name
	rule  *symbol.Rule
}

// buildAncestorIndex maps each symbol name to every nonterminal rule,
// anywhere in the grammar, whose RHS cites that name, so the pruner
// can search upward from a symbol to its parents.
func buildAncestorIndex(tab *symbol.Table) map[symbol.Name][]ancestorRef {
	idx := map[symbol.Name][]ancestorRef{}
	for _, name := range tab.Names() {
		sym, ok := tab.Symbol(name)
		if !ok {
			continue
		}
		for _, r := range sym.Rules {
			if r.IsTerminal {
				continue
			}
			for _, childName := range r.RHS {
				child := symbol.Name(childName)
				idx[child] = append(idx[child], ancestorRef{owner: name, rule: r})
			}
		}
	}
	return idx
}

// hasReducedSemantic reports whether r already satisfies its semantic
// requirement on its own terms: it carries a reduced semantic, had
// one completed by the external edit-rule generator, is an
// input-derived placeholder, or carries an anaphoraPersonNumber that
// copies an antecedent's semantic instead of supplying its own.
func hasReducedSemantic(r *symbol.Rule) bool {
	return r.SemanticIsReduced || r.InsertedSemantic || r.IsPlaceholder || r.AnaphoraPersonNumber != ""
}

// semanticPass holds the state shared across one fixed-point iteration
// of PruneSemanticRequirements: the ancestor index built from the
// grammar as it stood at the start of the pass, the per-symbol
// produces-a-reduced-semantic memo, and the rules condemned so far
// (with the ancestor-path diagnostic recorded for each).
type semanticPass struct {
	tab         *symbol.Table
	ancestorsOf map[symbol.Name][]ancestorRef
	produceMemo map[symbol.Name]*bool
	condemned   map[*symbol.Rule][]string
}

// isSafe implements the ancestor-search algorithm: a rule is safe if
// it (or its RHS) already produces a reduced semantic, or if at least
// one ancestor path from the start symbol tolerates a semantic-less
// subtree here — either because that ancestor already has a reduced
// semantic, because one of its other RHS branches can produce one, or
// because the ancestor itself turns out to be safe by the same rule.
// Every rule is marked semanticSafe on entry (optimistically true) to
// break cycles; a rule revisited mid-evaluation simply inherits that
// in-progress mark instead of recursing again.
func (p *semanticPass) isSafe(owner symbol.Name, r *symbol.Rule) bool {
	if r.SemanticSafe != nil {
		return *r.SemanticSafe
	}
	optimistic := true
	r.SemanticSafe = &optimistic

	if hasReducedSemantic(r) {
		return true
	}
	if !r.IsTerminal {
		allProduce := true
		for _, childName := range r.RHS {
			if !canProduceReducedSemantic(p.tab, symbol.Name(childName), p.produceMemo, map[*symbol.Rule]bool{}) {
				allProduce = false
				break
			}
		}
		if allProduce {
			return true
		}
	}

	paths := arraylist.New()
	safe := false
	for _, anc := range p.ancestorsOf[owner] {
		if hasReducedSemantic(anc.rule) {
			safe = true
			break
		}
		otherBranchProduces := false
		for _, childName := range anc.rule.RHS {
			if symbol.Name(childName) == owner {
				continue
			}
			if canProduceReducedSemantic(p.tab, symbol.Name(childName), p.produceMemo, map[*symbol.Rule]bool{}) {
				otherBranchProduces = true
				break
			}
		}
		if otherBranchProduces {
			safe = true
			break
		}
		if p.isSafe(anc.owner, anc.rule) {
			safe = true
			break
		}
		paths.Add(genRuleName(anc.owner, anc.rule))
	}

	*r.SemanticSafe = safe
	if !safe {
		recorded := make([]string, paths.Size())
		for i, v := range paths.Values() {
			recorded[i] = v.(string)
		}
		p.condemned[r] = recorded
	}
	return safe
}

// ancestorPathDetail renders the ancestor rules that demanded a
// reduced semantic none of them could supply, for inclusion in the
// removal warning.
func ancestorPathDetail(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return "required via: " + strings.Join(paths, " -> ")
}

// PruneSemanticRequirements removes every rule that neither carries
// nor can produce a reduced semantic and for which every ancestor
// path from the start symbol demands one it cannot supply. It walks
// the whole symbol table to a fixed point: removing one rule can
// strip its LHS symbol of the only ancestor path that tolerated a
// semantic-less subtree, which in turn disqualifies a rule one level
// up, and so on. It returns one warning *ierrors.Error per removed
// rule, each carrying the ancestor paths that forced its removal.
func PruneSemanticRequirements(tab *symbol.Table) ierrors.List {
	var removed ierrors.List
	for {
		for _, name := range tab.Names() {
			sym, ok := tab.Symbol(name)
			if !ok {
				continue
			}
			for _, r := range sym.Rules {
				r.SemanticSafe = nil
			}
		}

		pass := &semanticPass{
			tab:         tab,
			ancestorsOf: buildAncestorIndex(tab),
			produceMemo: map[symbol.Name]*bool{},
			condemned:   map[*symbol.Rule][]string{},
		}
		for _, name := range tab.Names() {
			sym, ok := tab.Symbol(name)
			if !ok {
				continue
			}
			for _, r := range sym.Rules {
				pass.isSafe(name, r)
			}
		}

		if len(pass.condemned) == 0 {
			break
		}

		changedThisPass := false
		for _, name := range tab.Names() {
			sym, ok := tab.Symbol(name)
			if !ok {
				continue
			}
			var kept []*symbol.Rule
			for _, r := range sym.Rules {
				paths, bad := pass.condemned[r]
				if !bad {
					kept = append(kept, r)
					continue
				}
				removed = append(removed, &ierrors.Error{
					Kind:      ierrors.KindSemanticRequirementFailure,
					Warning:   true,
					Site:      sym.DefinitionSite,
					Offending: genRuleName(name, r),
					Detail:    ancestorPathDetail(paths),
				})
				changedThisPass = true
			}
			sym.Rules = kept
		}
		if !changedThisPass {
			break
		}
	}
	return removed
}

// canProduceReducedSemantic reports whether rhs's subgrammar contains
// at least one rule whose own semantic is reduced, or whose unfilled
// semantic could still be completed by its own RHS recursively.
// visited guards the rule graph's cycles within a single call chain,
// keyed by rule identity rather than symbol name, so a symbol reached
// twice through different parent rules is still explored on each
// path; memo caches the converged per-symbol answer across the whole
// pass.
func canProduceReducedSemantic(tab *symbol.Table, rhs symbol.Name, memo map[symbol.Name]*bool, visited map[*symbol.Rule]bool) bool {
	if cached, ok := memo[rhs]; ok {
		return *cached
	}
	sym, ok := tab.Symbol(rhs)
	if !ok {
		result := false
		memo[rhs] = &result
		return false
	}

	result := false
	for _, r := range sym.Rules {
		if visited[r] {
			// A cycle through this rule with no settled answer yet
			// contributes nothing; it is resolved by whichever
			// acyclic path reaches a reduced semantic first.
			continue
		}
		if hasReducedSemantic(r) {
			result = true
			break
		}
		if r.IsTerminal {
			continue
		}
		visited[r] = true
		allChildrenCanProduce := true
		for _, childName := range r.RHS {
			if !canProduceReducedSemantic(tab, symbol.Name(childName), memo, visited) {
				allChildrenCanProduce = false
				break
			}
		}
		delete(visited, r)
		if allChildrenCanProduce {
			result = true
			break
		}
	}
	memo[rhs] = &result
	return result
}
