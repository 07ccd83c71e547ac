package parseforest

import "errors"

var (
	errMissingChild          = errors.New("a term-sequence sub-node is missing a required child node")
	errChildCarriesSemantics = errors.New("a child sub-node carries personNumber, anaphoraPersonNumber, or semantic")
	errAmbiguousSingleToken  = errors.New("ambiguous term-sequence sub-nodes cover a single token with no deletion cost")
	errMultipleUnconjugated  = errors.New("more than one child carries an unconjugated tense")
)
