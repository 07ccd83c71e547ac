// Package symbol implements the nonterminal/terminal symbol registry:
// the name-indexed symbol table, the rule records each symbol owns,
// and the duplicate/sealed-symbol enforcement every builder call
// goes through.
//
// The registry is process-wide, mutable state during grammar
// definition and read-only afterward (the grammar driver never
// mutates it once compilation's pruning/diversification/stripping
// passes finish), mirroring the lifecycle of a compiler's symbol
// table.
package symbol

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"

	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/semantic"
	"github.com/DannyNemer/aang-sub004/text"
)

// Name is a symbol's registry key, conventionally a
// bracket-hyphenated string such as "[noun-phrase]".
type Name string

// TermSequenceType enumerates what kind of term sequence a symbol is,
// used to constrain which items a sequence may accept. The zero
// value means "not a term sequence".
type TermSequenceType string

const (
	TypeNone       TermSequenceType = ""
	TypeInvariable TermSequenceType = "invariable"
	TypePronoun    TermSequenceType = "pronoun"
	TypeVerb       TermSequenceType = "verb"

	// TypeVerbPresent and TypeVerbPast name the tense-restricted verb
	// term-sequence constructor parameter; a symbol built with either
	// is stored with TermSequenceType TypeVerb, since both behave as a
	// plain verb sequence for the purpose of the pair type-
	// compatibility checks elsewhere. Once stored, the two are not
	// distinguished; tense-restricted display text comes only from
	// NewVerb's Tense option.
	TypeVerbPresent TermSequenceType = "verb-present"
	TypeVerbPast    TermSequenceType = "verb-past"
)

// Flags records the three boolean markers a term-sequence symbol can
// carry.
type Flags struct {
	IsTermSequence bool
	IsTermSet      bool
	IsBinarySymbol bool
}

// Rule is a single production under a Symbol. Terminal and
// nonterminal rules share this one struct (selected by IsTerminal)
// rather than two unrelated types, because every pass in this module
// (pruning, diversification, stripping) walks a symbol's rule list
// uniformly regardless of which kind a given rule is; the
// terminal-only and nonterminal-only fields are simply unused on the
// other variant.
type Rule struct {
	IsTerminal bool

	// RHS is the right-hand side: for a terminal rule, the lowercase
	// input token(s) (normally one, rarely a multi-word
	// substitution); for a nonterminal rule, 1–2 symbol Names.
	RHS []string

	Text          *text.Value
	Semantic      semantic.Semantic
	InsertionCost *float64
	Cost          float64

	// Terminal-only.
	IsPlaceholder bool
	IsStopWord    bool
	IsSubstitution bool
	Tense          string

	// Nonterminal-only.
	GramProps             map[int]text.GramProps
	PersonNumber          text.FormTag
	AnaphoraPersonNumber  text.FormTag
	NoInsert              bool
	NoInsertionIndexes    []int
	TranspositionCost     *float64
	SemanticIsReduced     bool
	IsTermSequence        bool

	// Internal/temporary, removed by the temp-property stripper.
	Line                   int
	SemanticSafe           *bool
	NotRecursive           bool
	RHSTermSequenceIndexes []int

	// Edit-rule markers, produced by the external insertion/
	// substitution/transposition generator. Never set by this
	// module's own builders; only inspected, to guard the cost
	// diversifier's ordering precondition.
	InsertedSymIdx  *int
	IsTransposition bool

	// InsertedSemantic marks a rule whose semantic was completed by
	// the external edit-rule generator rather than supplied at
	// definition time. Like the edit-rule markers above, this
	// module's own builders never set it; the semantic-requirement
	// pruner treats it as equivalent to carrying a reduced semantic.
	InsertedSemantic bool
}

// IsEmptyPlaceholder reports whether r is the "<empty>" sentinel RHS
// used by the external edit-rule pass to generate optional
// insertions.
func (r *Rule) IsEmptyPlaceholder() bool {
	return len(r.RHS) == 1 && r.RHS[0] == "<empty>"
}

// rhsEqual reports whether two rules share the same RHS vector.
func rhsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ruleSnapshot flattens a Rule into plain comparable fields (using
// text.Value.DebugKey/semantic.Semantic.DebugKey to stand in for the
// unexported Text/Semantic representations) so structhash can hash it
// without reaching into unexported state. Line is intentionally
// omitted, since two rules differing only in source line should
// still be treated as structurally identical.
type ruleSnapshot struct {
	IsTerminal             bool
	RHS                    []string
	TextKey                string
	SemanticKey            string
	InsertionCost          *float64
	Cost                   float64
	IsPlaceholder          bool
	IsStopWord             bool
	IsSubstitution         bool
	Tense                  string
	GramProps              map[int]text.GramProps
	PersonNumber           text.FormTag
	AnaphoraPersonNumber   text.FormTag
	NoInsert               bool
	NoInsertionIndexes     []int
	TranspositionCost      *float64
	SemanticIsReduced      bool
	IsTermSequence         bool
	NotRecursive           bool
	RHSTermSequenceIndexes []int
}

// StructuralHash returns a content hash of r, excluding Line, used by
// the binary-symbol factory to detect two requests that describe the
// same structural rule and should share one symbol.
func (r *Rule) StructuralHash() string {
	snap := ruleSnapshot{
		IsTerminal: r.IsTerminal, RHS: r.RHS,
		InsertionCost: r.InsertionCost, Cost: r.Cost,
		IsPlaceholder: r.IsPlaceholder, IsStopWord: r.IsStopWord, IsSubstitution: r.IsSubstitution,
		Tense: r.Tense, GramProps: r.GramProps,
		PersonNumber: r.PersonNumber, AnaphoraPersonNumber: r.AnaphoraPersonNumber,
		NoInsert: r.NoInsert, NoInsertionIndexes: r.NoInsertionIndexes,
		TranspositionCost: r.TranspositionCost, SemanticIsReduced: r.SemanticIsReduced,
		IsTermSequence: r.IsTermSequence, NotRecursive: r.NotRecursive,
		RHSTermSequenceIndexes: r.RHSTermSequenceIndexes,
	}
	if r.Text != nil {
		snap.TextKey = r.Text.DebugKey()
	}
	if r.Semantic != nil {
		snap.SemanticKey = r.Semantic.DebugKey()
	}
	h, err := structhash.Hash(snap, 1)
	if err != nil {
		// structhash only fails on unhashable types, none of which
		// ruleSnapshot contains; a failure here is a programmer error.
		panic(fmt.Sprintf("symbol: cannot hash rule: %v", err))
	}
	return h
}

// Symbol is a registry entry: a nonterminal (or terminal) name, its
// ordered rule list, and the term-sequence bookkeeping attached to
// term-sequence symbols.
type Symbol struct {
	Name  Name
	Rules []*Rule
	Flags Flags

	TermSequenceType TermSequenceType
	DefaultText      *text.Value
	InsertionCost    *float64

	DefinitionSite ierrors.DefSite

	// sealed is true once a binary symbol's one rule, or a term
	// sequence's accepted rule set, is finalized: further addRule
	// calls are rejected (CompletedTermSequence /
	// CompletedBinarySymbol).
	sealed bool
}

// Seal marks s as complete; subsequent AddRule calls fail.
func (s *Symbol) Seal() { s.sealed = true }

// Table is the symbol registry: name-indexed symbols, each owning its
// rule list, plus the definition sites recorded for diagnostics.
//
// Table is populated exclusively through Table methods during grammar
// definition and is safe to read concurrently once the defining
// goroutine stops mutating it. The grammar driver never calls a
// mutating method again after invoking the semantic/reachability/cost
// passes, which operate on the already-populated Rules slices in
// place.
type Table struct {
	symbols map[Name]*Symbol
	start   Name
	// order preserves symbol-creation order; alphabetical order is
	// derived from it on demand by SortedNames (which the artifact
	// serializer uses), keeping Table itself insertion-ordered like a
	// real compiler's symbol table.
	order []Name
}

// NewTable builds an empty registry.
func NewTable() *Table {
	return &Table{symbols: map[Name]*Symbol{}}
}

// SetStart designates name as the grammar's start symbol; name need
// not already be registered.
func (t *Table) SetStart(name Name) { t.start = name }

// Start returns the start symbol's name.
func (t *Table) Start() Name { return t.start }

// NewSymbol registers a new symbol named name. It fails
// DuplicateSymbol if name is already registered.
func (t *Table) NewSymbol(name Name, site ierrors.DefSite) (*Symbol, error) {
	if _, ok := t.symbols[name]; ok {
		return nil, &ierrors.Error{
			Kind:      ierrors.KindDuplicateSymbol,
			Cause:     fmt.Errorf("symbol %q already registered", name),
			Site:      site,
			Offending: name,
		}
	}
	sym := &Symbol{Name: name, DefinitionSite: site}
	t.symbols[name] = sym
	t.order = append(t.order, name)
	return sym, nil
}

// Symbol looks up a registered symbol by name.
func (t *Table) Symbol(name Name) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// MustSymbol looks up name, or registers it on first reference — used
// when a builder names a RHS symbol before that symbol's own
// definition has run (grammars are not necessarily defined in
// dependency order).
func (t *Table) MustSymbol(name Name) *Symbol {
	if s, ok := t.symbols[name]; ok {
		return s
	}
	sym := &Symbol{Name: name}
	t.symbols[name] = sym
	t.order = append(t.order, name)
	return sym
}

// AddRule appends rule to the symbol named lhs. It fails
// CompletedTermSequence or CompletedBinarySymbol if lhs is sealed, and
// DuplicateRule if a rule with the same RHS already exists under lhs.
func (t *Table) AddRule(lhs Name, rule *Rule, site ierrors.DefSite) error {
	sym := t.MustSymbol(lhs)
	if sym.sealed {
		kind := ierrors.KindCompletedTermSequence
		if sym.Flags.IsBinarySymbol {
			kind = ierrors.KindCompletedBinarySymbol
		}
		return &ierrors.Error{
			Kind:      kind,
			Cause:     fmt.Errorf("symbol %q is sealed and accepts no further rules", lhs),
			Site:      site,
			Offending: lhs,
		}
	}
	for _, existing := range sym.Rules {
		if rhsEqual(existing.RHS, rule.RHS) {
			return &ierrors.Error{
				Kind:      ierrors.KindDuplicateRule,
				Cause:     fmt.Errorf("symbol %q already has a rule with RHS %v", lhs, rule.RHS),
				Site:      site,
				Offending: rule,
			}
		}
	}
	rule.Line = site.Line
	sym.Rules = append(sym.Rules, rule)
	return nil
}

// RemoveSymbol deletes name from the registry entirely (used by the
// unreachable/ruleless pruner).
func (t *Table) RemoveSymbol(name Name) {
	delete(t.symbols, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Names returns every registered symbol name, in definition order.
func (t *Table) Names() []Name {
	out := make([]Name, len(t.order))
	copy(out, t.order)
	return out
}

// SortedNames returns every registered symbol name in ascending
// alphabetical order, the order the compiled-artifact serializer
// emits symbols in.
func (t *Table) SortedNames() []Name {
	set := treeset.NewWith(godsutils.StringComparator)
	for _, n := range t.order {
		set.Add(string(n))
	}
	out := make([]Name, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, Name(v.(string)))
	}
	return out
}

// Len returns the number of registered symbols.
func (t *Table) Len() int { return len(t.symbols) }

// sortRulesByCost sorts a symbol's rules ascending by cost, the order
// the final compiled artifact requires.
func sortRulesByCost(rules []*Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Cost < rules[j].Cost
	})
}

// SortRulesByCost sorts every symbol's rule list ascending by cost.
func (t *Table) SortRulesByCost() {
	for _, s := range t.symbols {
		sortRulesByCost(s.Rules)
	}
}
