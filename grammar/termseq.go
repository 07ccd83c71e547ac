package grammar

import (
	"github.com/DannyNemer/aang-sub004/grammar/symbol"
	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/text"
)

// Tense restricts a verb term set's output to a subset of its forms.
type Tense string

const (
	TenseUnrestricted Tense = ""
	TensePresent      Tense = "present"
	TensePast         Tense = "past"
)

// VerbFormsTermSet names every inflected form a verb term sequence
// may display. OneSg, ThreeSg, and Pl are always required; Past is
// required unless Tense is TensePresent, in which case it must be
// empty.
type VerbFormsTermSet struct {
	OneSg   string
	ThreeSg string
	Pl      string
	Past    string

	PresentSubjunctive string
	PresentParticiple  string
	PastParticiple     string
}

// VerbOpts is the option schema for the verb term-sequence
// constructor.
type VerbOpts struct {
	Name              symbol.Name
	Forms             VerbFormsTermSet
	Tense             Tense
	NoPastDisplayText bool
	InsertionCost     *float64
}

// NewVerb builds a verb term-sequence symbol: one or more terminal
// rules, every one sharing the identical conjugative Text value (or,
// under TensePast, the identical invariable past-tense Text), so that
// whichever surface form a user typed, conjugation can still resolve
// any of the verb's other forms from the parent rule's grammatical
// properties. The one exception is NoPastDisplayText: the past form
// is then left out of the conjugative Text and gets its own
// substitution rule whose Text is the invariable pl form.
func NewVerb(tab *symbol.Table, opts VerbOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	if opts.Tense != TenseUnrestricted && opts.NoPastDisplayText {
		return nil, illFormedVerb(errIllFormedVerbTenseConflict, site, opts)
	}
	if opts.Forms.OneSg == "" || opts.Forms.ThreeSg == "" || opts.Forms.Pl == "" {
		return nil, illFormedVerb(errIllFormedVerbMissingForm, site, opts)
	}
	switch opts.Tense {
	case TensePresent:
		if opts.Forms.Past != "" {
			return nil, illFormedVerb(errIllFormedVerbPastInPresent, site, opts)
		}
	default:
		if opts.Forms.Past == "" {
			return nil, illFormedVerb(errIllFormedVerbMissingForm, site, opts)
		}
	}

	sym, err := tab.NewSymbol(opts.Name, site)
	if err != nil {
		return nil, err
	}
	sym.Flags.IsTermSequence = true
	sym.TermSequenceType = symbol.TypeVerb

	if opts.Tense == TensePast {
		return buildPastOnlyVerb(tab, sym, opts, site)
	}
	return buildConjugativeVerb(tab, sym, opts, site)
}

func illFormedVerb(cause error, site ierrors.DefSite, opts VerbOpts) *ierrors.Error {
	return &ierrors.Error{Kind: ierrors.KindIllFormedVerb, Cause: cause, Site: site, Offending: opts}
}

func buildPastOnlyVerb(tab *symbol.Table, sym *symbol.Symbol, opts VerbOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	display := text.NewInvariable(opts.Forms.Past)
	sym.DefaultText = &display
	sym.InsertionCost = opts.InsertionCost
	sym.Flags.IsTermSet = true

	rule := &symbol.Rule{IsTerminal: true, RHS: []string{opts.Forms.Past}, Text: &display, InsertionCost: opts.InsertionCost}
	if err := tab.AddRule(sym.Name, rule, site); err != nil {
		return nil, err
	}
	sym.Seal()
	return sym, nil
}

func buildConjugativeVerb(tab *symbol.Table, sym *symbol.Symbol, opts VerbOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	forms := map[text.FormTag]string{
		text.OneSg:   opts.Forms.OneSg,
		text.ThreeSg: opts.Forms.ThreeSg,
		text.Pl:      opts.Forms.Pl,
	}
	// ordered so the first distinct token created becomes the
	// "oneSg or past" rule insertionCost is assigned to.
	order := []text.FormTag{text.OneSg, text.ThreeSg, text.Pl}

	if opts.Tense == TenseUnrestricted && !opts.NoPastDisplayText {
		forms[text.Past] = opts.Forms.Past
		order = append(order, text.Past)
	}
	if opts.Forms.PresentSubjunctive != "" {
		forms[text.PresentSubjunctive] = opts.Forms.PresentSubjunctive
		order = append(order, text.PresentSubjunctive)
	}
	if opts.Forms.PresentParticiple != "" {
		forms[text.PresentParticiple] = opts.Forms.PresentParticiple
		order = append(order, text.PresentParticiple)
	}
	if opts.Forms.PastParticiple != "" {
		forms[text.PastParticiple] = opts.Forms.PastParticiple
		order = append(order, text.PastParticiple)
	}

	formsText, err := text.NewForms(forms)
	if err != nil {
		return nil, err
	}
	sym.DefaultText = &formsText
	sym.InsertionCost = opts.InsertionCost

	seenTokens := map[string]bool{}
	first := true
	for _, tag := range order {
		token := forms[tag]
		if seenTokens[token] {
			continue
		}
		seenTokens[token] = true

		rule := &symbol.Rule{IsTerminal: true, RHS: []string{token}, Text: &formsText}
		if first {
			rule.InsertionCost = opts.InsertionCost
			first = false
		}
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}

	addedDivergentText := false
	if opts.NoPastDisplayText {
		presentDefault := text.NewInvariable(opts.Forms.Pl)
		if !seenTokens[opts.Forms.Past] {
			rule := &symbol.Rule{
				IsTerminal:     true,
				RHS:            []string{opts.Forms.Past},
				Text:           &presentDefault,
				IsSubstitution: true,
			}
			if err := tab.AddRule(sym.Name, rule, site); err != nil {
				return nil, err
			}
			addedDivergentText = true
		}
	}

	// isTermSet requires every rule to share identical text; the
	// substitution rule above carries presentDefault instead of
	// formsText, so its presence disqualifies the symbol.
	sym.Flags.IsTermSet = len(sym.Rules) > 0 && !addedDivergentText
	sym.Seal()
	return sym, nil
}

// PronounForms names a pronoun's two case forms.
type PronounForms struct {
	Nom string
	Obj string
}

// PronounOpts is the option schema for the pronoun term-sequence
// constructor.
type PronounOpts struct {
	Name          symbol.Name
	Forms         PronounForms
	InsertionCost *float64
}

// NewPronoun builds a pronoun term-sequence symbol: up to two
// terminal rules (nom, obj), sharing one Forms{nom,obj} text,
// conjugated by a parent rule's grammaticalForm.
func NewPronoun(tab *symbol.Table, opts PronounOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	if opts.Forms.Nom == "" || opts.Forms.Obj == "" {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedPronoun, Cause: errIllFormedVerbMissingForm, Site: site, Offending: opts}
	}

	formsText, err := text.NewForms(map[text.FormTag]string{text.Nom: opts.Forms.Nom, text.Obj: opts.Forms.Obj})
	if err != nil {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedPronoun, Cause: err, Site: site, Offending: opts}
	}

	sym, err := tab.NewSymbol(opts.Name, site)
	if err != nil {
		return nil, err
	}
	sym.Flags.IsTermSequence = true
	sym.Flags.IsTermSet = true
	sym.TermSequenceType = symbol.TypePronoun
	sym.DefaultText = &formsText
	sym.InsertionCost = opts.InsertionCost

	seen := map[string]bool{}
	for i, token := range []string{opts.Forms.Nom, opts.Forms.Obj} {
		if seen[token] {
			continue
		}
		seen[token] = true
		rule := &symbol.Rule{IsTerminal: true, RHS: []string{token}, Text: &formsText}
		if i == 0 {
			rule.InsertionCost = opts.InsertionCost
		}
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}
	sym.Seal()
	return sym, nil
}

// SubstitutedTerm is one entry of an invariable term set's
// substitutedTerms: a literal input token mapped to the set's default
// text, with its own cost penalty.
type SubstitutedTerm struct {
	Term        string
	CostPenalty float64
}

// InvariableOpts is the option schema for the invariable term-set
// constructor.
type InvariableOpts struct {
	Name             symbol.Name
	AcceptedTerms    []string
	SubstitutedTerms []SubstitutedTerm
	InsertionCost    *float64
}

// NewInvariableTermSet builds an invariable term-sequence symbol. The
// first accepted term's string becomes the set's DefaultText;
// substitutions carry that default text with their own cost penalty.
func NewInvariableTermSet(tab *symbol.Table, opts InvariableOpts, site ierrors.DefSite) (*symbol.Symbol, error) {
	if len(opts.AcceptedTerms) == 0 {
		return nil, &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errIllFormedVerbMissingForm, Site: site, Offending: opts}
	}

	defaultText := text.NewInvariable(opts.AcceptedTerms[0])

	sym, err := tab.NewSymbol(opts.Name, site)
	if err != nil {
		return nil, err
	}
	sym.Flags.IsTermSequence = true
	sym.Flags.IsTermSet = true
	sym.TermSequenceType = symbol.TypeInvariable
	sym.DefaultText = &defaultText
	sym.InsertionCost = opts.InsertionCost

	seen := map[string]bool{}
	for i, term := range opts.AcceptedTerms {
		if seen[term] {
			continue
		}
		seen[term] = true
		termText := text.NewInvariable(term)
		rule := &symbol.Rule{IsTerminal: true, RHS: []string{term}, Text: &termText}
		if i == 0 {
			rule.InsertionCost = opts.InsertionCost
		}
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}
	for _, sub := range opts.SubstitutedTerms {
		if seen[sub.Term] {
			continue
		}
		seen[sub.Term] = true
		rule := &symbol.Rule{
			IsTerminal:     true,
			RHS:            []string{sub.Term},
			Text:           &defaultText,
			IsSubstitution: true,
		}
		rule.Cost = sub.CostPenalty
		if err := tab.AddRule(sym.Name, rule, site); err != nil {
			return nil, err
		}
	}
	sym.Seal()
	return sym, nil
}
