package grammar

import "errors"

// Sentinel causes wrapped by *ierrors.Error, named the way the
// teacher's semantic_error.go catalogs one error value per distinct
// invariant violation rather than building ad hoc fmt.Errorf text at
// every call site.
var (
	errRHSLengthOutOfRange      = errors.New("a rule's RHS must have 1 or 2 symbols")
	errTranspositionNeedsBinary = errors.New("transpositionCost requires a 2-symbol RHS")
	errEmptyRuleCarriesExtra    = errors.New("an <empty> rule must carry no text, semantic, or insertionCost")
	errSymbolOnlyEmptyRules     = errors.New("a symbol's rule list may not consist exclusively of <empty> rules")
	errTermSequenceRHSNotSeq    = errors.New("a term-sequence rule's RHS symbols must themselves be term sequences")
	errGramPropUnsupported      = errors.New("gramProps names a grammatical property no descendant text value supports")
	errSubstitutionWithForm     = errors.New("a multi-token substitution cannot coexist with grammaticalForm on the same RHS entry")
	errInvalidTerminalToken     = errors.New("a terminal token may contain only letters, apostrophes, '<'/'>', or a non-negative integer literal")
	errInvalidWhitespace        = errors.New("a terminal token may contain only single interstitial spaces")
	errStopWordCarriesText      = errors.New("a stop-word or placeholder rule must carry no text or insertionCost")
	errIllFormedVerbTenseConflict = errors.New("tense and noPastDisplayText cannot both be set")
	errIllFormedVerbPastInPresent = errors.New("a present-tense verb form set must not include a past form")
	errIllFormedVerbMissingForm   = errors.New("a verb form set is missing a required form")
	errIllFormedSequenceType      = errors.New("a term-sequence pair must contain exactly one item of the sequence's type and one invariable item")
	errIllFormedSequenceTerminal  = errors.New("a terminal symbol may only be supplied directly to an invariable term sequence")
	errIllFormedSequenceUnknownType = errors.New("unrecognized term-sequence type")
	errIllFormedSequenceItemType    = errors.New("an accepted or substituted item's termSequenceType does not match the sequence")
	errDiversifyAfterEditRules    = errors.New("cost diversification must run before edit-rule generation")
	errStripAfterSort             = errors.New("temp-property stripping expects costs already diversified and sorted")
	errResidualAfterStrip         = errors.New("temp-property stripping left a symbol that still requires reachability pruning")
)
