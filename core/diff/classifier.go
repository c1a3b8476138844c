package diff

// Classifier decides the disposition of the current pair of heads.
type Classifier struct {
	keys KeyComparer
}

// NewClassifier creates a classifier ordering keys with the given comparer.
func NewClassifier(keys KeyComparer) *Classifier {
	return &Classifier{keys: keys}
}

// Classify returns the disposition for headA and headB. The rules are
// evaluated in order and the first match wins. Null keys take priority over
// Add and Delete: a null key on B after A is exhausted is reported as
// Null key 2, and a null key on A is reported before B's exhaustion is
// considered. When both heads are End the zero Disposition is returned.
func (c *Classifier) Classify(headA, headB Head) Disposition {
	recA, okA := headA.Record()
	recB, okB := headB.Record()

	switch {
	case !okA && !okB:
		return Disposition{}
	case !okA:
		if recB.Key == nil {
			return Disposition{Type: ChangeNullKeyB, AdvanceB: true}
		}
		return Disposition{Type: ChangeAdd, AdvanceB: true}
	case recA.Key == nil:
		return Disposition{Type: ChangeNullKeyA, AdvanceA: true}
	case !okB:
		return Disposition{Type: ChangeDelete, AdvanceA: true}
	case recB.Key == nil:
		return Disposition{Type: ChangeNullKeyB, AdvanceB: true}
	}

	switch order := c.keys.Compare(recA.Key, recB.Key); {
	case order == 0:
		return Disposition{Type: ChangeEdit, AdvanceA: true, AdvanceB: true}
	case order < 0:
		return Disposition{Type: ChangeDelete, AdvanceA: true}
	default:
		return Disposition{Type: ChangeAdd, AdvanceB: true}
	}
}
