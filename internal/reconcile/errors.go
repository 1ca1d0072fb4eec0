package reconcile

import (
	"fmt"

	"github.com/wellywell/safetap/internal/types"
)

type InvalidTransitionError struct {
	From types.OrderStatus
	To   types.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from %s to %s is not allowed", e.From, e.To)
}
