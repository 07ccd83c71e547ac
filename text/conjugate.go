package text

import (
	"github.com/DannyNemer/aang-sub004/ierrors"
)

// GramProps carries the per-RHS-index conjugation instructions a
// nonterminal rule attaches to one of its RHS symbols: a forced Form,
// a permissive AcceptedTense, or both.
type GramProps struct {
	AcceptedTense string
	Form          FormTag
}

// MergeTextPair concatenates two adjacent text values at a sequence
// boundary. Two invariable strings collapse to a single Invariable;
// anything involving a Forms or an existing Sequence produces a new
// Sequence with Forms values preserved (for conjugation at flattening
// time) and adjacent strings coalesced into one Invariable separated
// by a single space. The result is never a nested sequence and never
// holds two adjacent raw strings.
func MergeTextPair(a, b Value) Value {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if a.IsInvariable() && b.IsInvariable() {
		return NewInvariable(joinSingleSpace(a.String(), b.String()))
	}

	elems := make([]Value, 0, 4)
	elems = appendFlattened(elems, a)
	elems = appendFlattened(elems, b)
	elems = coalesceAdjacentStrings(elems)

	if len(elems) == 1 {
		return elems[0]
	}
	v, err := NewSequence(elems)
	if err != nil {
		// appendFlattened/coalesceAdjacentStrings guarantee the
		// NewSequence invariants hold; a failure here means this
		// function has a bug, not that the caller passed bad input.
		panic(err)
	}
	return v
}

func appendFlattened(dst []Value, v Value) []Value {
	if v.IsSequence() {
		return append(dst, v.Sequence()...)
	}
	return append(dst, v)
}

func coalesceAdjacentStrings(elems []Value) []Value {
	out := elems[:0:0]
	for _, e := range elems {
		if n := len(out); n > 0 && out[n-1].IsInvariable() && e.IsInvariable() {
			out[n-1] = NewInvariable(joinSingleSpace(out[n-1].String(), e.String()))
			continue
		}
		out = append(out, e)
	}
	return out
}

// Conjugate resolves a text Value to a concrete display string, given
// the parent rule's gramProps for this RHS position, the input tense
// observed on this subtree (if any), and the person-number an
// insertion carried in (if this subtree is the target of a
// left-insertion whose inserted text came from a nominative subject).
//
// Resolution order, per form:
//  1. gp.AcceptedTense == inputTense and the tag exists: use it.
//  2. gp.Form (already normalized) exists: use it.
//  3. insertedPersonNumber is set and the tag exists: use it.
//  4. Otherwise, ConjugationFailure.
//
// A Sequence is conjugated element-wise and rejoined with single
// spaces; an Invariable passes through unchanged.
func Conjugate(v Value, gp GramProps, inputTense string, insertedPersonNumber FormTag) (string, error) {
	switch {
	case v.IsZero():
		return "", illFormedText("cannot conjugate a zero text value")
	case v.IsInvariable():
		return v.String(), nil
	case v.IsSequence():
		elems := v.Sequence()
		var out string
		for _, e := range elems {
			s, err := Conjugate(e, gp, inputTense, insertedPersonNumber)
			if err != nil {
				return "", err
			}
			out = joinSingleSpace(out, s)
		}
		return out, nil
	}

	forms := v.Forms()

	if gp.AcceptedTense != "" && gp.AcceptedTense == inputTense {
		if s, ok := forms[FormTag(inputTense)]; ok {
			return s, nil
		}
	}
	if gp.Form != "" {
		form := NormalizeTag(gp.Form)
		if s, ok := forms[form]; ok {
			return s, nil
		}
	}
	if insertedPersonNumber != "" {
		if s, ok := forms[insertedPersonNumber]; ok {
			return s, nil
		}
	}

	return "", conjugationFailure(forms, gp, inputTense)
}

func illFormedText(detail string) *ierrors.Error {
	return &ierrors.Error{Kind: ierrors.KindIllFormedText, Detail: detail}
}

func conjugationFailure(forms map[FormTag]string, gp GramProps, inputTense string) *ierrors.Error {
	return &ierrors.Error{
		Kind:      ierrors.KindConjugationFailure,
		Detail:    "no form in the conjugative text value satisfies the parent's grammatical properties",
		Offending: struct {
			Forms       map[FormTag]string
			GramProps   GramProps
			InputTense  string
		}{forms, gp, inputTense},
	}
}
