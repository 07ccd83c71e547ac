// Package ierrors defines the error taxonomy shared by the grammar
// compiler and the parse-forest flattener.
//
// Builder calls (grammar/*.go) and the flattener (parseforest) return
// *Error rather than bare errors so that callers can distinguish a
// schema mistake in a grammar definition from an accumulated warning
// that only trims a rule.
package ierrors

import "fmt"

// Kind identifies the category of an Error, matching the error kinds
// named in the system's error-handling design.
type Kind string

const (
	// Schema errors: malformed builder option objects.
	KindSchema Kind = "schema"

	// Invariant errors on rule/symbol construction.
	KindDuplicateSymbol       Kind = "duplicate-symbol"
	KindDuplicateRule         Kind = "duplicate-rule"
	KindIllFormedNonterminal  Kind = "ill-formed-nonterminal"
	KindIllFormedTerminal     Kind = "ill-formed-terminal"
	KindIllFormedText         Kind = "ill-formed-text"
	KindIllFormedTermSequence Kind = "ill-formed-term-sequence"
	KindIllFormedVerb         Kind = "ill-formed-verb"
	KindIllFormedPronoun      Kind = "ill-formed-pronoun"
	KindCompletedTermSequence Kind = "completed-term-sequence"
	KindCompletedBinarySymbol Kind = "completed-binary-symbol"

	// Sequencing errors.
	KindOutOfSequence     Kind = "out-of-sequence"
	KindInvariantViolated Kind = "invariant-violated"

	// Parse-time errors.
	KindConjugationFailure    Kind = "conjugation-failure"
	KindUnexpectedAmbiguity   Kind = "unexpected-ambiguity"
	KindIllFormedChildSubnode Kind = "ill-formed-child-subnode"

	// Non-fatal diagnostics accumulated during pruning.
	KindSemanticRequirementFailure Kind = "semantic-requirement-failure"
	KindUnreachableSymbol          Kind = "unreachable-symbol"
)

// DefSite records the grammar-definition call site that produced a
// symbol, rule, or error, mirroring how a compiler attaches a
// row/column to a diagnostic.
type DefSite struct {
	File string
	Line int
}

func (s DefSite) String() string {
	if s.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Error is the single error type returned by grammar builders and the
// parse-forest flattener. Warning is true for diagnostics that are
// recorded but do not halt compilation (semantic-requirement and
// unreachable-symbol removals).
type Error struct {
	Kind    Kind
	Cause   error
	Detail  string
	Site    DefSite
	Warning bool

	// Offending is the option object, rule, or symbol name that
	// triggered the error, kept for diagnostic rendering.
	Offending interface{}
}

func (e *Error) Error() string {
	site := e.Site.String()
	switch {
	case site != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s: %s: %v", site, e.Kind, e.Detail, e.Cause)
	case site != "":
		return fmt.Sprintf("%s: %s: %v", site, e.Kind, e.Cause)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with no source-location or detail context;
// callers that know the definition site should set Site afterward.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// List accumulates errors and warnings raised across a single
// compilation. Callers filter by Warning to separate the two, per the
// "warnings accumulate but do not fail the build" recovery policy.
type List []*Error

func (l List) Error() string {
	var s string
	for i, e := range l {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

// Fatal returns the subset of l that are not warnings.
func (l List) Fatal() List {
	var out List
	for _, e := range l {
		if !e.Warning {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the subset of l that are warnings.
func (l List) Warnings() List {
	var out List
	for _, e := range l {
		if e.Warning {
			out = append(out, e)
		}
	}
	return out
}
