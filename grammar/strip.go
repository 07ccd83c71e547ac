package grammar

import (
	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/text"
)

// StripTempProperties removes every internal-only bookkeeping field a
// rule carries (Line, SemanticSafe, NotRecursive,
// RHSTermSequenceIndexes) and every "<empty>" placeholder rule left
// over from the builder/pruning passes. It also removes any per-RHS
// gramProps entry that is a zero-value object, then drops the whole
// gramProps map once it has no entries left. Finally it re-verifies
// that no symbol was left unreachable or ruleless by the strip; a
// residual pruning need at this point means an earlier pass ran out
// of order and is reported as InvariantViolated rather than silently
// re-pruned.
func StripTempProperties(tab *symbol.Table) error {
	for _, name := range tab.Names() {
		sym, ok := tab.Symbol(name)
		if !ok {
			continue
		}
		var kept []*symbol.Rule
		for _, r := range sym.Rules {
			if r.IsEmptyPlaceholder() {
				continue
			}
			r.Line = 0
			r.SemanticSafe = nil
			r.NotRecursive = false
			r.RHSTermSequenceIndexes = nil
			for idx, gp := range r.GramProps {
				if gp == (text.GramProps{}) {
					delete(r.GramProps, idx)
				}
			}
			if len(r.GramProps) == 0 {
				r.GramProps = nil
			}
			kept = append(kept, r)
		}
		sym.Rules = kept
	}

	residual := PruneUnreachable(tab)
	if len(residual) > 0 {
		return &ierrors.Error{Kind: ierrors.KindInvariantViolated, Cause: errResidualAfterStrip}
	}
	return nil
}
