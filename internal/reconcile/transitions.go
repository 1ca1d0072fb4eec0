package reconcile

import (
	"fmt"

	"github.com/wellywell/safetap/internal/types"
)

// IsValidStatusTransition decides whether an order may move from current to
// candidate given its payments. Moving into printing, shipping or activation
// needs a confirmed payment; retreating and marking as lost never do.
func IsValidStatusTransition(current, candidate types.OrderStatus, info types.PaymentInfo) bool {
	if candidate == types.RejectedStatus {
		return current == types.OrderedStatus || current == types.PaidStatus
	}

	switch current {
	case types.OrderedStatus:
		return candidate == types.PaidStatus || candidate == types.LostStatus
	case types.PaidStatus:
		switch candidate {
		case types.PrintingStatus:
			return info.HasConfirmedPayment
		case types.OrderedStatus, types.LostStatus:
			return true
		}
	case types.PrintingStatus:
		switch candidate {
		case types.ShippedStatus:
			return info.HasConfirmedPayment
		case types.PaidStatus, types.LostStatus:
			return true
		}
	case types.ShippedStatus:
		switch candidate {
		case types.ActiveStatus:
			return info.HasConfirmedPayment && !info.HasPendingPayment
		case types.PrintingStatus, types.LostStatus:
			return true
		}
	case types.ActiveStatus:
		return candidate == types.LostStatus || candidate == types.ShippedStatus
	case types.LostStatus:
		return candidate == types.OrderedStatus
	case types.RejectedStatus:
		return candidate == types.OrderedStatus || candidate == types.CancelledStatus
	case types.CancelledStatus:
		return candidate == types.OrderedStatus
	}
	return false
}

// ValidateStatusTransition is IsValidStatusTransition for callers that want an error.
func ValidateStatusTransition(current, candidate types.OrderStatus, info types.PaymentInfo) error {
	if !candidate.IsValid() {
		return fmt.Errorf("unknown status %q: %w", candidate, &InvalidTransitionError{From: current, To: candidate})
	}
	if !IsValidStatusTransition(current, candidate, info) {
		return &InvalidTransitionError{From: current, To: candidate}
	}
	return nil
}
