package parseforest

import (
	"sort"

	"github.com/DannyNemer/aang-sub004/ierrors"
	"github.com/DannyNemer/aang-sub004/text"
)

// Flatten walks n's forest depth-first and replaces every term-
// sequence sub-node's RuleProps with a flattened terminal RuleProps,
// so nothing downstream ever sees IsTermSequence set after Flatten
// returns without error.
func Flatten(n *Node) error {
	if n == nil {
		return nil
	}
	for _, sn := range n.Subs {
		if err := Flatten(sn.Node); err != nil {
			return err
		}
		if err := Flatten(sn.Next); err != nil {
			return err
		}
	}
	return flattenSubs(n)
}

// flattenSubs resolves ambiguity among same-span term-sequence
// sub-nodes under n (keeping only the cheapest), then flattens every
// surviving term-sequence sub-node in place.
func flattenSubs(n *Node) error {
	bySpan := map[int][]*Subnode{}
	var spans []int
	var passthrough []*Subnode
	for _, sn := range n.Subs {
		if sn.RuleProps == nil || !sn.RuleProps.IsTermSequence {
			passthrough = append(passthrough, sn)
			continue
		}
		if _, seen := bySpan[sn.Span]; !seen {
			spans = append(spans, sn.Span)
		}
		bySpan[sn.Span] = append(bySpan[sn.Span], sn)
	}
	sort.Ints(spans)

	kept := passthrough
	for _, span := range spans {
		group := bySpan[span]
		chosen := group[0]
		if len(group) > 1 {
			if err := validateAmbiguity(group, span); err != nil {
				return err
			}
			chosen = cheapest(group)
		}
		if err := flattenSubnode(chosen); err != nil {
			return err
		}
		kept = append(kept, chosen)
	}
	n.Subs = kept
	return nil
}

// validateAmbiguity enforces the precondition that benign ambiguity
// among term-sequence sub-nodes arises only from deletions or rare
// grammar accidents: the group must span more than one token, or at
// least one member must carry a deletion cost of 1 or more.
func validateAmbiguity(group []*Subnode, span int) error {
	if span > 1 {
		return nil
	}
	for _, sn := range group {
		if sn.DeletionCost >= 1 {
			return nil
		}
	}
	return &ierrors.Error{Kind: ierrors.KindUnexpectedAmbiguity, Cause: errAmbiguousSingleToken}
}

func cheapest(group []*Subnode) *Subnode {
	best := group[0]
	for _, sn := range group[1:] {
		if sn.MinCost < best.MinCost {
			best = sn
		}
	}
	return best
}

// flattenSubnode dispatches to one of the three flattening cases by
// sub-node shape.
func flattenSubnode(sn *Subnode) error {
	rp := sn.RuleProps
	switch {
	case rp.InsertedSymIdx != nil:
		return flattenInsertion(sn)
	case rp.Text != nil:
		return flattenSubstitution(sn)
	default:
		return flattenOrdinary(sn)
	}
}

// flattenOrdinary handles a sub-node with no override text and no
// insertion marker: it merges the display text of its RHS child
// (children, if binary), conjugating each via the parent's
// gramProps[i] and its own tense, and propagates at most one
// unconjugated child tense upward.
func flattenOrdinary(sn *Subnode) error {
	rp := sn.RuleProps

	leftVal, leftTense, err := childDisplay(sn.Node, rp.GramProps[0])
	if err != nil {
		return err
	}

	merged := leftVal
	tense := leftTense
	if sn.Next != nil {
		rightVal, rightTense, err := childDisplay(sn.Next, rp.GramProps[1])
		if err != nil {
			return err
		}
		merged = text.MergeTextPair(leftVal, rightVal)
		tense, err = combineTense(leftTense, rightTense)
		if err != nil {
			return err
		}
	}

	sn.RuleProps = &RuleProps{
		Cost:                 sn.MinCost,
		Text:                 &merged,
		Tense:                tense,
		Semantic:             rp.Semantic,
		PersonNumber:         rp.PersonNumber,
		AnaphoraPersonNumber: rp.AnaphoraPersonNumber,
	}
	return nil
}

// flattenSubstitution handles a sub-node that already carries an
// override display text: the children's own text is discarded, but
// still scanned for an unconjugated tense so that an ancestor's
// acceptedTense can pick the right form of the substitution.
func flattenSubstitution(sn *Subnode) error {
	rp := sn.RuleProps

	tense := ""
	if sn.Node != nil {
		_, childTense, err := childDisplay(sn.Node, text.GramProps{})
		if err != nil {
			return err
		}
		tense = childTense
	}
	if sn.Next != nil {
		_, rightTense, err := childDisplay(sn.Next, text.GramProps{})
		if err != nil {
			return err
		}
		tense, err = combineTense(tense, rightTense)
		if err != nil {
			return err
		}
	}

	sn.RuleProps = &RuleProps{
		Cost:                 sn.MinCost,
		Text:                 rp.Text,
		Tense:                tense,
		Semantic:             rp.Semantic,
		PersonNumber:         rp.PersonNumber,
		AnaphoraPersonNumber: rp.AnaphoraPersonNumber,
	}
	return nil
}

// flattenInsertion handles a unary sub-node carrying both an override
// text and an insertedSymIdx: the single child is conjugated using the
// parent's gramProps[0] (and, only for index 0, the parent's own
// personNumber as the inserted fallback), then merged with the parent
// text at the position insertedSymIdx names.
func flattenInsertion(sn *Subnode) error {
	rp := sn.RuleProps
	idx := *rp.InsertedSymIdx

	childVal, childTense, err := childRawDisplay(sn.Node)
	if err != nil {
		return err
	}

	var insertedPersonNumber text.FormTag
	if idx == 0 {
		insertedPersonNumber = rp.PersonNumber
	}
	conjugated, err := text.Conjugate(childVal, rp.GramProps[0], childTense, insertedPersonNumber)
	if err != nil {
		return &ierrors.Error{Kind: ierrors.KindConjugationFailure, Cause: err}
	}
	insertedText := text.NewInvariable(conjugated)

	var merged text.Value
	if idx == 0 {
		merged = text.MergeTextPair(insertedText, *rp.Text)
	} else {
		merged = text.MergeTextPair(*rp.Text, insertedText)
	}

	sn.RuleProps = &RuleProps{
		Cost:                 sn.MinCost,
		Text:                 &merged,
		Semantic:             rp.Semantic,
		PersonNumber:         rp.PersonNumber,
		AnaphoraPersonNumber: rp.AnaphoraPersonNumber,
	}
	return nil
}

// childDisplay returns child's winning display text (conjugated per
// gp when gp names a form or accepted tense) and any tense left
// unconjugated for the caller to propagate. A child forbidden from
// carrying personNumber, anaphoraPersonNumber, or semantic fails
// IllFormedChildSubnode.
func childDisplay(child *Node, gp text.GramProps) (text.Value, string, error) {
	raw, tense, err := childRawDisplay(child)
	if err != nil {
		return text.Value{}, "", err
	}
	if gp.Form == "" && gp.AcceptedTense == "" {
		return raw, tense, nil
	}
	conjugated, err := text.Conjugate(raw, gp, tense, "")
	if err != nil {
		return text.Value{}, "", &ierrors.Error{Kind: ierrors.KindConjugationFailure, Cause: err}
	}
	return text.NewInvariable(conjugated), "", nil
}

// childRawDisplay returns a child node's already-flattened display
// text and tense without applying any further conjugation, validating
// that the child carries none of the fields forbidden on a child
// sub-node.
func childRawDisplay(child *Node) (text.Value, string, error) {
	if child == nil || len(child.Subs) == 0 {
		return text.Value{}, "", &ierrors.Error{Kind: ierrors.KindIllFormedChildSubnode, Cause: errMissingChild}
	}
	sn := child.Subs[0]
	rp := sn.RuleProps
	if rp.PersonNumber != "" || rp.AnaphoraPersonNumber != "" || rp.Semantic != nil {
		return text.Value{}, "", &ierrors.Error{Kind: ierrors.KindIllFormedChildSubnode, Cause: errChildCarriesSemantics}
	}
	if rp.Text == nil {
		return text.Value{}, "", &ierrors.Error{Kind: ierrors.KindIllFormedChildSubnode, Cause: errMissingChild}
	}
	return *rp.Text, rp.Tense, nil
}

// combineTense enforces that at most one of a binary pair's two
// children carries an unconjugated tense.
func combineTense(left, right string) (string, error) {
	if left != "" && right != "" {
		return "", &ierrors.Error{Kind: ierrors.KindIllFormedTermSequence, Cause: errMultipleUnconjugated}
	}
	if left != "" {
		return left, nil
	}
	return right, nil
}
