package reconcile

import "github.com/wellywell/safetap/internal/types"

// DisplayState is what an operator sees for an order. When the stored status
// disagrees with the payments, PrimaryStatus follows the payments and the
// stored status is kept in SecondaryStatuses.
type DisplayState struct {
	PrimaryStatus     types.OrderStatus   `json:"primaryStatus"`
	SecondaryStatuses []types.OrderStatus `json:"secondaryStatuses"`
	Description       string              `json:"description"`
}

func demoted(shown, stored types.OrderStatus, description string) DisplayState {
	return DisplayState{
		PrimaryStatus:     shown,
		SecondaryStatuses: []types.OrderStatus{stored},
		Description:       description,
	}
}

func shownAs(status types.OrderStatus, description string) DisplayState {
	return DisplayState{
		PrimaryStatus:     status,
		SecondaryStatuses: []types.OrderStatus{},
		Description:       description,
	}
}

// DisplayStatus resolves the status to show. Rules are checked in order and
// the first match wins.
func DisplayStatus(current types.OrderStatus, info types.PaymentInfo) DisplayState {
	switch {
	case current == types.ActiveStatus && info.HasPendingPayment:
		return demoted(types.ShippedStatus, current, "Inconsistencia: Activa con pagos pendientes")
	case current == types.PaidStatus && !info.HasConfirmedPayment:
		return demoted(types.OrderedStatus, current, "Inconsistencia: Pagada sin confirmación de pago")
	case current == types.ShippedStatus && !info.HasConfirmedPayment && info.HasPendingPayment:
		return demoted(types.OrderedStatus, current, "Inconsistencia: Enviada con solo pagos pendientes")
	case current == types.ShippedStatus && info.PaymentCount == 0:
		return demoted(types.OrderedStatus, current, "Inconsistencia: Enviada sin pagos")
	case current == types.ActiveStatus && info.PaymentCount == 0:
		return demoted(types.OrderedStatus, current, "Inconsistencia: Activa sin pagos")
	case current == types.ActiveStatus && !info.HasConfirmedPayment:
		return demoted(types.OrderedStatus, current, "Inconsistencia: Activa sin pago confirmado")
	case current == types.OrderedStatus && info.HasRejectedPayment:
		return shownAs(types.RejectedStatus, "Pago rechazado")
	}

	switch current {
	case types.OrderedStatus:
		if info.HasConfirmedPayment {
			return shownAs(types.PaidStatus, "Pago confirmado")
		}
		if info.HasRejectedPayment {
			return shownAs(types.RejectedStatus, "Pago rechazado")
		}
		return shownAs(types.OrderedStatus, "")
	case types.PaidStatus, types.PrintingStatus, types.ShippedStatus, types.ActiveStatus,
		types.LostStatus, types.RejectedStatus, types.CancelledStatus:
		return shownAs(current, "")
	}
	return shownAs(current, "Estado desconocido")
}
