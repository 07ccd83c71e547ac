package grammar

import (
	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/text"
)

// Item is one element a term sequence's acceptedTerms/substitutedTerms
// list accepts: a terminal token string (invariable sequences only), a
// reference to an already-built term-sequence symbol, or a nested
// ordered pair recursively flattened by BinarySequenceSymbol.
//
// Exactly one of Term, Symbol, or Pair is populated; build one with
// TermItem, SymbolItem, or PairOf rather than the struct literal.
type Item struct {
	Term   string
	Symbol *symbol.Symbol
	Pair   *PairItem
}

// PairItem is an ordered pair of items nested inside a larger
// sequence, flattened via the binary-symbol factory.
type PairItem struct {
	First  Item
	Second Item
}

// TermItem wraps a terminal token string.
func TermItem(token string) Item { return Item{Term: token} }

// SymbolItem wraps a reference to an already-built term-sequence
// symbol.
func SymbolItem(sym *symbol.Symbol) Item { return Item{Symbol: sym} }

// PairOf wraps an ordered pair of items.
func PairOf(first, second Item) Item { return Item{Pair: &PairItem{First: first, Second: second}} }

// SubstitutedItem is one entry of a term sequence's substitutedTerms:
// an item mapped to its own cost penalty, displayed as the sequence's
// defaultText.
type SubstitutedItem struct {
	Item        Item
	CostPenalty float64
}

// TermSequenceOpts is the option schema for the general term-sequence
// constructor.
type TermSequenceOpts struct {
	Name             symbol.Name
	Type             symbol.TermSequenceType
	AcceptedTerms    []Item
	SubstitutedTerms []SubstitutedItem
	InsertionCost    *float64
}

// NewTermSequence builds a term-sequence symbol out of other term
// sequences (and, for invariable sequences, raw terminal strings),
// recursively flattening any nested pair via BinarySequenceSymbol. The
// sequence's defaultText is its first accepted item's default text
// (merged, for a pair); every substitution rule carries that same
// defaultText regardless of which item it substitutes.
func NewTermSequence(tab *symbol.Table, opts TermSequenceOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	storedType, err := normalizeSequenceType(opts.Type)
	if err != nil {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: err, Site: site, Offending: opts}
	}
	if len(opts.AcceptedTerms) == 0 {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedVerbMissingForm, Site: site, Offending: opts}
	}

	sym, err := tab.NewSymbol(opts.Name, site)
	if err != nil {
		return nil, err
	}
	sym.Flags.IsTermSequence = true
	sym.TermSequenceType = storedType
	sym.InsertionCost = opts.InsertionCost

	allTerminal := true
	var defaultText *text.Value
	for i, item := range opts.AcceptedTerms {
		res, err := resolveAcceptedItem(tab, item, storedType, site)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			defaultText = res.Text
		}
		var insertionCost *float64
		if i == 0 {
			insertionCost = opts.InsertionCost
		}
		rule, err := itemMemberRule(tab, res, res.Text, false, 0, insertionCost, site)
		if err != nil {
			return nil, err
		}
		if !res.IsTerminal {
			allTerminal = false
		}
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}
	sym.DefaultText = defaultText

	for _, sub := range opts.SubstitutedTerms {
		res, err := resolveSubstitutedItem(tab, sub.Item, storedType, site)
		if err != nil {
			return nil, err
		}
		rule, err := itemMemberRule(tab, res, defaultText, true, sub.CostPenalty, nil, site)
		if err != nil {
			return nil, err
		}
		if !res.IsTerminal {
			allTerminal = false
		}
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}

	sym.Flags.IsTermSet = allTerminal
	sym.Seal()
	return sym, nil
}

// BinaryOpts names the binary-symbol factory's naming and grammatical
// inputs: the generated name hyphenates the RHS symbol names,
// suffixing "-no-insert" when NoInsert is set and the grammatical-form
// tag when GrammaticalForm is set, so that symbols differing only in
// those properties remain distinct.
type BinaryOpts struct {
	GrammaticalForm text.FormTag
	NoInsert        bool
}

// BinarySequenceSymbol flattens an ordered pair of items into a single
// binary-rule symbol, reusing any existing binary symbol whose sole
// rule is structurally equal (same fields except line). At most one
// of the pair's two items may resolve to a non-invariable type. The
// merged text of the pair is stored as the symbol's DefaultText; the
// rule itself carries no Text, so the flattener merges the children's
// own text at parse time. The result's
// termSequenceType is that non-invariable item's type, or invariable
// if both items are.
func BinarySequenceSymbol(tab *symbol.Table, first, second Item, opts BinaryOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	if first.Term != "" || second.Term != "" {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceTerminal, Site: site}
	}
	r1, err := resolveItem(tab, first, site)
	if err != nil {
		return nil, err
	}
	r2, err := resolveItem(tab, second, site)
	if err != nil {
		return nil, err
	}
	if r1.Type != symbol.TypeInvariable && r2.Type != symbol.TypeInvariable {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceType, Site: site}
	}

	resultType := symbol.TypeInvariable
	if r1.Type != symbol.TypeInvariable {
		resultType = r1.Type
	} else if r2.Type != symbol.TypeInvariable {
		resultType = r2.Type
	}

	merged := text.MergeTextPair(*r1.Text, *r2.Text)
	gramProps := map[int]text.GramProps{}
	if opts.GrammaticalForm != "" {
		gramProps[0] = text.GramProps{Form: opts.GrammaticalForm}
	}

	candidate, err := NewNonterminalRule(tab, NonterminalOpts{
		RHS:            []symbol.Name{r1.RHSName, r2.RHSName},
		GramProps:      gramProps,
		NoInsert:       opts.NoInsert,
		IsTermSequence: true,
	}, site)
	if err != nil {
		return nil, err
	}

	if existing := findExistingBinarySymbol(tab, candidate); existing != nil {
		return existing, nil
	}

	name := binarySymbolName(string(r1.RHSName), string(r2.RHSName), opts)
	sym, err := tab.NewSymbol(name, site)
	if err != nil {
		return nil, err
	}
	sym.Flags = symbol.Flags{IsTermSequence: true, IsBinarySymbol: true}
	sym.TermSequenceType = resultType
	sym.DefaultText = &merged

	if err := tab.AddRule(sym.Name, candidate, site); err != nil {
		return nil, err
	}
	sym.Seal()
	return sym, nil
}

func binarySymbolName(rhs1, rhs2 string, opts BinaryOpts) symbol.Name {
	name := rhs1 + "-" + rhs2
	if opts.NoInsert {
		name += "-no-insert"
	}
	if opts.GrammaticalForm != "" {
		name += "-" + string(opts.GrammaticalForm)
	}
	return symbol.Name(name)
}

// findExistingBinarySymbol scans the registry for an already-built
// binary symbol whose sole rule structurally equals candidate, so
// that two requests describing the same pair share one symbol.
func findExistingBinarySymbol(tab *symbol.Table, candidate *symbol.Rule) *symbol.Symbol {
	want := candidate.StructuralHash()
	for _, name := range tab.Names() {
		sym, _ := tab.Symbol(name)
		if !sym.Flags.IsBinarySymbol || len(sym.Rules) != 1 {
			continue
		}
		if sym.Rules[0].StructuralHash() == want {
			return sym
		}
	}
	return nil
}

// itemResolution is an item's fully-resolved shape: either a literal
// terminal token or a reference to an already-registered symbol
// (possibly just synthesized from a nested pair), plus the
// termSequenceType and default text a caller needs to validate and
// merge against a sibling item.
type itemResolution struct {
	IsTerminal bool
	Token      string
	RHSName    symbol.Name
	Type       symbol.TermSequenceType
	Text       *text.Value
}

// itemMemberRule builds the rule a term sequence's own accepted- or
// substituted-item entry contributes: a terminal rule (via
// NewTerminalRule) when res is a raw token, or a term-sequence-marked
// nonterminal rule (via NewNonterminalRule) referencing res's symbol
// otherwise.
//
// For a non-substitution nonterminal member, text is left nil: the
// flattener pulls the child's display text at parse time, and a
// non-nil text there would be mistaken for a substitution override.
// A terminal member, and any substitution, carries text explicitly:
// overrideText for a substitution (the sequence's own defaultText),
// res.Text otherwise.
func itemMemberRule(tab *symbol.Table, res *itemResolution, overrideText *text.Value, isSubstitution bool, costPenalty float64, insertionCost *float64, site ierrors.DefSite) (*symbol.Rule, error) {
	if res.IsTerminal {
		displayText := res.Text
		if isSubstitution {
			displayText = overrideText
		}
		return NewTerminalRule(TerminalOpts{
			RHS:            res.Token,
			Text:           displayText,
			IsSubstitution: isSubstitution,
			InsertionCost:  insertionCost,
			CostPenalty:    costPenalty,
		}, site)
	}
	var displayText *text.Value
	if isSubstitution {
		displayText = overrideText
	}
	return NewNonterminalRule(tab, NonterminalOpts{
		RHS:            []symbol.Name{res.RHSName},
		Text:           displayText,
		IsTermSequence: true,
		CostPenalty:    costPenalty,
	}, site)
}

// resolveItem resolves any Item, including a nested Pair (which it
// flattens via BinarySequenceSymbol), without validating it against an
// enclosing sequence's type; resolveAcceptedItem and
// resolveSubstitutedItem layer that validation on top.
func resolveItem(tab *symbol.Table, item Item, site ierrors.DefSite) (*itemResolution, error) {
	switch {
	case item.Pair != nil:
		sym, err := BinarySequenceSymbol(tab, item.Pair.First, item.Pair.Second, BinaryOpts{}, site)
		if err != nil {
			return nil, err
		}
		return &itemResolution{RHSName: sym.Name, Type: sym.TermSequenceType, Text: sym.DefaultText}, nil
	case item.Symbol != nil:
		return &itemResolution{RHSName: item.Symbol.Name, Type: item.Symbol.TermSequenceType, Text: item.Symbol.DefaultText}, nil
	default:
		v := text.NewInvariable(item.Term)
		return &itemResolution{IsTerminal: true, Token: item.Term, Type: symbol.TypeInvariable, Text: &v}, nil
	}
}

// resolveAcceptedItem resolves item and enforces accepted-item type
// rules: a raw terminal string is only legal in an invariable
// sequence; a symbol or pair's type must match the sequence's own
// type (a pair item, by BinarySequenceSymbol's own rule, always
// reduces to the sequence's type paired against invariable).
func resolveAcceptedItem(tab *symbol.Table, item Item, storedType symbol.TermSequenceType, site ierrors.DefSite) (*itemResolution, error) {
	if item.Term != "" && storedType != symbol.TypeInvariable {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceTerminal, Site: site}
	}
	res, err := resolveItem(tab, item, site)
	if err != nil {
		return nil, err
	}
	if res.Type != storedType {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceItemType, Site: site}
	}
	return res, nil
}

// resolveSubstitutedItem resolves item and enforces substituted-item
// type rules: the same type as the sequence, invariable, or (only
// when the sequence itself is invariable) a pronoun.
func resolveSubstitutedItem(tab *symbol.Table, item Item, storedType symbol.TermSequenceType, site ierrors.DefSite) (*itemResolution, error) {
	if item.Term != "" && storedType != symbol.TypeInvariable {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceTerminal, Site: site}
	}
	res, err := resolveItem(tab, item, site)
	if err != nil {
		return nil, err
	}
	ok := res.Type == storedType || res.Type == symbol.TypeInvariable
	if !ok && storedType == symbol.TypeInvariable && res.Type == symbol.TypePronoun {
		ok = true
	}
	if !ok {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedSequenceItemType, Site: site}
	}
	return res, nil
}

func normalizeSequenceType(t symbol.TermSequenceType) (symbol.TermSequenceType, error) {
	switch t {
	case symbol.TypeInvariable, symbol.TypePronoun, symbol.TypeVerb:
		return t, nil
	case symbol.TypeVerbPresent, symbol.TypeVerbPast:
		return symbol.TypeVerb, nil
	default:
		return "", errIllFormedSequenceUnknownType
	}
}
