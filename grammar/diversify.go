package grammar

import (
	"sort"

	godsutils "github.com/emirpasic/gods/utils"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
)

// epsilon is the per-rule cost increment DiversifyCosts adds to break
// ties among same-LHS rules of equal cost, small enough to never
// invert an intentional cost ordering between distinct base costs.
const epsilon = 1e-7

// DiversifyCosts adds an ascending epsilon-multiple to every rule
// under the same LHS symbol so that no two of its rules share exactly
// the same cost, then, within each symbol, sorts its rules ascending
// by the now-diversified cost. It does not reorder the symbol names;
// the artifact serializer emits them alphabetically. It must run before any edit-rule (insertion,
// substitution, transposition) markers exist on the table, since the
// epsilon increments would otherwise perturb costs the edit-rule
// generator depends on being exact; calling it after that point
// returns an OutOfSequence error instead of mutating anything.
func DiversifyCosts(tab *symbol.Table) error {
	for _, name := range tab.Names() {
		sym, _ := tab.Symbol(name)
		for _, r := range sym.Rules {
			if r.InsertedSymIdx != nil || r.IsTransposition {
				return &ierrors.Error{
					Kind:      ierrors.KindOutOfSequence,
					Cause:     errDiversifyAfterEditRules,
					Offending: name,
				}
			}
		}
	}

	for _, name := range tab.Names() {
		sym, _ := tab.Symbol(name)
		// Stable order by current cost first, so the epsilon increments
		// preserve whatever relative ordering the rules already had
		// among ties.
		ordered := make([]*symbol.Rule, len(sym.Rules))
		copy(ordered, sym.Rules)
		sort.SliceStable(ordered, func(i, j int) bool {
			return godsutils.Float64Comparator(ordered[i].Cost, ordered[j].Cost) < 0
		})
		for i, r := range ordered {
			r.Cost += epsilon * float64(i)
		}
	}

	tab.SortRulesByCost()
	return nil
}
