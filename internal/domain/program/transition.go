package program

// Transition is an edge of the lifecycle state machine.
type Transition struct {
	From Status
	To   Status
}

// transitions holds every legal status change. Creation (into draft) and
// deletion (out of draft) are not status changes and are handled separately.
var transitions = map[Transition]struct{}{
	{StatusDraft, StatusSubmitted}:       {},
	{StatusSubmitted, StatusUnderReview}: {},
	{StatusUnderReview, StatusAccepted}:  {},
	{StatusUnderReview, StatusRejected}:  {},
	{StatusSubmitted, StatusWithdrawn}:   {},
	{StatusUnderReview, StatusWithdrawn}: {},
}

// CanTransition reports whether from -> to is a listed edge.
func CanTransition(from, to Status) bool {
	_, ok := transitions[Transition{From: from, To: to}]
	return ok
}

// CheckTransition returns a *TransitionError when from -> to is not allowed.
func CheckTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// CheckDelete allows hard deletion only while in draft.
func CheckDelete(current Status) error {
	if current != StatusDraft {
		return &TransitionError{From: current, To: Deleted}
	}
	return nil
}

// CheckEditable allows form and name edits only while in draft.
func CheckEditable(current Status) error {
	if current != StatusDraft {
		return &TransitionError{From: current, To: current}
	}
	return nil
}

// Targets returns the statuses reachable from s in one step.
func Targets(s Status) []Status {
	var out []Status
	for _, to := range Statuses {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}
