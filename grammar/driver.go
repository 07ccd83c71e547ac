package grammar

import (
	"sort"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
)

func init() {
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = gologadapter.New()
	}
}

// T traces compilation progress to the global syntax tracer, the same
// indirection gorgo's runtime package uses so callers never import
// schuko/gtrace directly.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// EntityEntry is one row of a compiled artifact's entity table: a
// token mapped to the category-tagged id it resolves to at parse
// time.
type EntityEntry struct {
	ID       string
	Text     string
	Category string
}

// IntSymbolEntry records an integer-valued terminal's name and
// accepted range. Name is serialized exactly as the caller supplies
// it; no "<int:MIN-MAX>" name is generated from Min and Max.
type IntSymbolEntry struct {
	Name string
	Min  int
	Max  int
}

// Artifact is the compiled grammar's stable, ordered output: a
// symbol-name-to-rule-list map (symbols alphabetical, rules
// cost-ascending), the entity tables keyed by token, and the
// integer-symbol registry sorted by (min, max).
type Artifact struct {
	Start       symbol.Name
	SymbolNames []symbol.Name
	Rules       map[symbol.Name][]*symbol.Rule
	Entities    []EntityEntry
	IntSymbols  []IntSymbolEntry
}

// Report carries every warning accumulated across a single Compile
// call plus a RunID tagging the invocation, so two compiler runs over
// the same grammar definitions remain distinguishable once archived.
type Report struct {
	RunID    string
	Warnings ierrors.List
}

// Compile runs the pruning, diversification, and stripping passes
// over tab (already populated by user grammar-definition calls), in
// the fixed order the grammar intermediate representation requires:
// semantic-requirement pruning and unreachable-symbol pruning iterate
// against each other to a joint fixed point (a removal in one can
// newly qualify a removal in the other), then costs are diversified
// and sorted, then temp-only rule fields are stripped and
// reachability is re-verified, then the result is serialized into an
// Artifact.
//
// entities and intSymbols are supplied by the caller (populated
// during grammar definition, outside this package's concern) and are
// copied into the artifact in sorted order.
func Compile(tab *symbol.Table, entities []EntityEntry, intSymbols []IntSymbolEntry) (*Artifact, *Report, error) {
	report := &Report{RunID: uuid.NewString()}
	T().Infof("grammar: starting compilation run %s", report.RunID)

	for {
		semWarnings := PruneSemanticRequirements(tab)
		reachWarnings := PruneUnreachable(tab)
		report.Warnings = append(report.Warnings, semWarnings...)
		report.Warnings = append(report.Warnings, reachWarnings...)
		T().Debugf("grammar: pruning pass removed %d semantic, %d unreachable",
			len(semWarnings), len(reachWarnings))
		if len(semWarnings) == 0 && len(reachWarnings) == 0 {
			break
		}
	}

	if err := DiversifyCosts(tab); err != nil {
		return nil, report, err
	}

	// External edit-rule generation (insertion/substitution/
	// transposition) runs here, outside this package.

	if err := StripTempProperties(tab); err != nil {
		return nil, report, err
	}

	artifact := serialize(tab, entities, intSymbols)
	T().Infof("grammar: compilation run %s produced %d symbols", report.RunID, len(artifact.SymbolNames))
	return artifact, report, nil
}

func serialize(tab *symbol.Table, entities []EntityEntry, intSymbols []IntSymbolEntry) *Artifact {
	names := tab.SortedNames()
	rules := make(map[symbol.Name][]*symbol.Rule, len(names))
	for _, n := range names {
		sym, _ := tab.Symbol(n)
		sorted := make([]*symbol.Rule, len(sym.Rules))
		copy(sorted, sym.Rules)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cost < sorted[j].Cost })
		rules[n] = sorted
	}

	sortedEntities := make([]EntityEntry, len(entities))
	copy(sortedEntities, entities)
	sort.SliceStable(sortedEntities, func(i, j int) bool { return sortedEntities[i].Text < sortedEntities[j].Text })

	sortedInts := make([]IntSymbolEntry, len(intSymbols))
	copy(sortedInts, intSymbols)
	sort.SliceStable(sortedInts, func(i, j int) bool {
		if sortedInts[i].Min != sortedInts[j].Min {
			return sortedInts[i].Min < sortedInts[j].Min
		}
		return sortedInts[i].Max < sortedInts[j].Max
	})

	return &Artifact{
		Start:       tab.Start(),
		SymbolNames: names,
		Rules:       rules,
		Entities:    sortedEntities,
		IntSymbols:  sortedInts,
	}
}
