package order

import "fmt"

// forwardRank orders the manual fulfillment states. Admin transitions are
// forward-only but otherwise permissive: jumping straight from PENDING to
// DELIVERED is allowed, going backwards is not.
var forwardRank = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
}

// IsTerminal reports whether no transition may leave the state. DELIVERED is
// terminal except for its single RETURNED edge, handled in
// ValidateTransition.
func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusReturned || s == StatusDelivered
}

// ValidateTransition checks whether an order in state from may move to
// state to. It returns ErrInvalidTransition (wrapped with both states)
// when the edge does not exist.
func ValidateTransition(from, to Status) error {
	reject := func() error {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if from == to {
		return reject()
	}

	switch to {
	case StatusCancelled:
		// Any non-terminal state may cancel.
		if IsTerminal(from) {
			return reject()
		}
		return nil
	case StatusReturned:
		if from != StatusDelivered {
			return reject()
		}
		return nil
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered:
		fromRank, ok := forwardRank[from]
		if !ok {
			return reject()
		}
		if forwardRank[to] <= fromRank {
			return reject()
		}
		return nil
	default:
		// PENDING is initial-only; unknown targets are rejected outright.
		return reject()
	}
}

// ValidatePaymentTransition checks an admin verification outcome against the
// payment sub-state machine. Only an order awaiting verification may be
// marked PAID or FAILED; verification never repeats.
func ValidatePaymentTransition(from, to PaymentStatus) error {
	if from == PaymentPendingVerification && (to == PaymentPaid || to == PaymentFailed) {
		return nil
	}
	return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, from, to)
}
