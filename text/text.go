// Package text models the display-text values attached to grammar
// rules and the conjugation that resolves them to a concrete string
// at parse-forest flattening time.
//
// A Value is one of three shapes: an invariable string, a conjugative
// object keyed by grammatical form tag, or a flat sequence mixing the
// two. The three are modeled as a closed sum type (Invariable, Forms,
// Sequence) rather than as an untyped JSON-ish value, so construction
// invariants (no nested sequences, no adjacent raw strings, at least
// two tags/elements) can be enforced once, at the boundary, instead of
// at every call site that touches a Value.
package text

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DannyNemer/aang-sub004/ierrors"
)

var lowerCaser = cases.Lower(language.English)

// FormTag names a grammatical conjugation slot in a Forms value.
type FormTag string

// Recognized form tags, partitioned by the grammatical property they
// encode. "infinitive" is deliberately absent: NewForms rejects it as
// a stored tag, and NormalizeTag remaps it to Pl where it appears as
// a rule's gramProps form.
const (
	OneSg FormTag = "oneSg"
	ThreeSg FormTag = "threeSg"
	Pl FormTag = "pl"

	Nom FormTag = "nom"
	Obj FormTag = "obj"

	Past               FormTag = "past"
	Participle         FormTag = "participle"
	PresentSubjunctive FormTag = "presentSubjunctive"
	PresentParticiple  FormTag = "presentParticiple"
	PastParticiple     FormTag = "pastParticiple"
)

var recognizedTags = map[FormTag]bool{
	OneSg: true, ThreeSg: true, Pl: true,
	Nom: true, Obj: true,
	Past: true, Participle: true,
	PresentSubjunctive: true, PresentParticiple: true, PastParticiple: true,
}

// IsRecognized reports whether tag is one of the form tags defined
// above. A tag matches when it equals a defined tag exactly, or when
// its lower-cased spelling equals one of the all-lower-case tags (pl,
// nom, obj, past, participle); the camel-case tags (oneSg, threeSg,
// presentSubjunctive, presentParticiple, pastParticiple) match only
// in their exact spelling. The tag itself is not rewritten.
func IsRecognized(tag FormTag) bool {
	return recognizedTags[FormTag(lowerCaser.String(string(tag)))] || recognizedTags[tag]
}

// NormalizeTag remaps "infinitive" to Pl, the only tag substitution
// the data model performs; every other tag passes through unchanged.
func NormalizeTag(tag FormTag) FormTag {
	if tag == "infinitive" {
		return Pl
	}
	return tag
}

// Value is the sum type Invariable(string) | Forms(map[FormTag]string)
// | Sequence([]Value). Construct values with the New* functions, which
// validate the invariants; the zero Value is invalid.
type Value struct {
	kind     kind
	str      string
	forms    map[FormTag]string
	sequence []Value
}

type kind int

const (
	kindInvalid kind = iota
	kindInvariable
	kindForms
	kindSequence
)

// NewInvariable builds an invariable text value.
func NewInvariable(s string) Value {
	return Value{kind: kindInvariable, str: s}
}

// NewForms builds a conjugative text value. It fails IllFormedText if
// forms has fewer than two tags or contains an unrecognized tag.
func NewForms(forms map[FormTag]string) (Value, error) {
	if len(forms) < 2 {
		return Value{}, illFormed("a conjugative text value needs at least 2 form tags")
	}
	normalized := make(map[FormTag]string, len(forms))
	for tag, s := range forms {
		if tag == "infinitive" {
			return Value{}, illFormed("infinitive must never be stored as a form tag")
		}
		if !IsRecognized(tag) {
			return Value{}, illFormed("unrecognized form tag: " + string(tag))
		}
		normalized[tag] = s
	}
	return Value{kind: kindForms, forms: normalized}, nil
}

// NewSequence builds a mixed array of invariable and conjugative
// values. It fails IllFormedText if the sequence has fewer than two
// elements, contains a nested Sequence, or has two adjacent
// Invariable elements (those should have been merged with
// MergeTextPair instead).
func NewSequence(elems []Value) (Value, error) {
	if len(elems) < 2 {
		return Value{}, illFormed("a text sequence needs at least 2 elements")
	}
	for i, e := range elems {
		if e.kind == kindSequence {
			return Value{}, illFormed("a text sequence must not nest another sequence")
		}
		if e.kind == kindInvalid {
			return Value{}, illFormed("a text sequence element is uninitialized")
		}
		if i > 0 && e.kind == kindInvariable && elems[i-1].kind == kindInvariable {
			return Value{}, illFormed("a text sequence must not have adjacent raw strings")
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: kindSequence, sequence: cp}, nil
}

// IsInvariable, IsForms, and IsSequence report the Value's active
// variant.
func (v Value) IsInvariable() bool { return v.kind == kindInvariable }
func (v Value) IsForms() bool      { return v.kind == kindForms }
func (v Value) IsSequence() bool   { return v.kind == kindSequence }
func (v Value) IsZero() bool       { return v.kind == kindInvalid }

// String returns the invariable string; callers must check
// IsInvariable first.
func (v Value) String() string { return v.str }

// Forms returns the tag-to-string map; callers must check IsForms
// first. The returned map must not be mutated.
func (v Value) Forms() map[FormTag]string { return v.forms }

// Sequence returns the element list; callers must check IsSequence
// first. The returned slice must not be mutated.
func (v Value) Sequence() []Value { return v.sequence }

func illFormed(detail string) *ierrors.Error {
	return &ierrors.Error{Kind: ierrors.KindIllFormedText, Cause: errors.New(detail), Detail: detail}
}

// joinSingleSpace is the one place string concatenation with a single
// interstitial space happens, so every merge path agrees on spacing.
func joinSingleSpace(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return strings.TrimRight(a, " ") + " " + strings.TrimLeft(b, " ")
}

// jsonValue is Value's wire representation for the compiled artifact:
// exactly one of Invariable/Forms/Sequence is populated, mirroring how
// the compiled grammar serializes a RegExp-bearing text as its source
// string rather than as an opaque object.
type jsonValue struct {
	Invariable string            `json:"invariable,omitempty"`
	Forms      map[FormTag]string `json:"forms,omitempty"`
	Sequence   []Value           `json:"sequence,omitempty"`
}

// MarshalJSON renders v as whichever of its three variants is active.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindInvariable:
		return json.Marshal(jsonValue{Invariable: v.str})
	case kindForms:
		return json.Marshal(jsonValue{Forms: v.forms})
	case kindSequence:
		return json.Marshal(jsonValue{Sequence: v.sequence})
	default:
		return json.Marshal(jsonValue{})
	}
}

// UnmarshalJSON restores a Value from its wire representation.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	switch {
	case jv.Forms != nil:
		parsed, err := NewForms(jv.Forms)
		if err != nil {
			return err
		}
		*v = parsed
	case jv.Sequence != nil:
		parsed, err := NewSequence(jv.Sequence)
		if err != nil {
			return err
		}
		*v = parsed
	default:
		*v = NewInvariable(jv.Invariable)
	}
	return nil
}

// DebugKey returns a canonical string encoding of v, stable across
// equal values and distinct across unequal ones. It exists solely so
// that code outside this package (the binary-symbol structural-equality
// check in grammar/symbol) can compare or hash Values without reaching
// into their unexported representation.
func (v Value) DebugKey() string {
	switch v.kind {
	case kindInvariable:
		return "s:" + v.str
	case kindForms:
		tags := make([]string, 0, len(v.forms))
		for tag := range v.forms {
			tags = append(tags, string(tag))
		}
		sort.Strings(tags)
		var b strings.Builder
		b.WriteString("f:")
		for _, tag := range tags {
			b.WriteString(tag)
			b.WriteByte('=')
			b.WriteString(v.forms[FormTag(tag)])
			b.WriteByte(';')
		}
		return b.String()
	case kindSequence:
		var b strings.Builder
		b.WriteString("q:[")
		for _, e := range v.sequence {
			b.WriteString(e.DebugKey())
			b.WriteByte(',')
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "nil"
	}
}
