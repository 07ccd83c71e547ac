package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
)

// PruneUnreachable removes every symbol not reachable from the
// grammar's start symbol via a fixed-point reachability DFS, and every
// symbol left with no rules at all (a symbol whose last rule was
// stripped by PruneSemanticRequirements). Removing an unreachable
// symbol can itself strand symbols only that symbol referenced, so
// reachability is recomputed until a pass removes nothing. It returns
// one warning *ierrors.Error per removed symbol.
func PruneUnreachable(tab *symbol.Table) ierrors.List {
	var removed ierrors.List
	for {
		reachable := treeset.NewWith(godsutils.StringComparator)
		markReachable(tab, tab.Start(), reachable)

		var toRemove []symbol.Name
		for _, name := range tab.Names() {
			sym, ok := tab.Symbol(name)
			if !ok {
				continue
			}
			if !reachable.Contains(string(name)) || len(sym.Rules) == 0 {
				toRemove = append(toRemove, name)
			}
		}
		if len(toRemove) == 0 {
			break
		}
		for _, name := range toRemove {
			sym, _ := tab.Symbol(name)
			removed = append(removed, &ierrors.Error{
				Kind:      ierrors.KindUnreachableSymbol,
				Warning:   true,
				Site:      sym.DefinitionSite,
				Offending: name,
			})
			tab.RemoveSymbol(name)
		}

		removeRulesCitingAbsentSymbols(tab)
	}
	return removed
}

// removeRulesCitingAbsentSymbols drops any rule whose RHS names a
// symbol no longer in the registry, left behind when RemoveSymbol
// deletes a symbol other rules still cite.
func removeRulesCitingAbsentSymbols(tab *symbol.Table) {
	for _, name := range tab.Names() {
		sym, ok := tab.Symbol(name)
		if !ok {
			continue
		}
		var kept []*symbol.Rule
		for _, r := range sym.Rules {
			stale := false
			if !r.IsTerminal {
				for _, childName := range r.RHS {
					if _, ok := tab.Symbol(symbol.Name(childName)); !ok {
						stale = true
						break
					}
				}
			}
			if !stale {
				kept = append(kept, r)
			}
		}
		sym.Rules = kept
	}
}

// markReachable performs a DFS from name over nonterminal RHS edges,
// recording every symbol it visits. A visited check in the caller's
// set doubles as the cycle guard.
func markReachable(tab *symbol.Table, name symbol.Name, reachable *treeset.Set) {
	if name == "" || reachable.Contains(string(name)) {
		return
	}
	sym, ok := tab.Symbol(name)
	if !ok {
		return
	}
	reachable.Add(string(name))
	for _, r := range sym.Rules {
		if r.IsTerminal {
			continue
		}
		for _, childName := range r.RHS {
			markReachable(tab, symbol.Name(childName), reachable)
		}
	}
}
