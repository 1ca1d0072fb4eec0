package reconcile

import "github.com/wellywell/safetap/internal/types"

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
	Special  Direction = "special"
)

type OrderStatusTransition struct {
	Status          types.OrderStatus `json:"status"`
	Direction       Direction         `json:"direction"`
	RequiresPayment bool              `json:"requiresPayment"`
	Description     string            `json:"description"`
}

// statusCatalog only carries labels for the UI. Whether an edge is offered is
// decided by IsValidStatusTransition.
var statusCatalog = map[types.OrderStatus][]OrderStatusTransition{
	types.OrderedStatus: {
		{Status: types.PaidStatus, Direction: Forward, Description: "Marcar como pagada"},
		{Status: types.RejectedStatus, Direction: Special, Description: "Rechazar pago"},
		{Status: types.LostStatus, Direction: Special, Description: "Marcar como perdida"},
	},
	types.PaidStatus: {
		{Status: types.PrintingStatus, Direction: Forward, RequiresPayment: true, Description: "Enviar a impresión"},
		{Status: types.OrderedStatus, Direction: Backward, Description: "Volver a creada"},
		{Status: types.RejectedStatus, Direction: Special, Description: "Rechazar pago"},
		{Status: types.LostStatus, Direction: Special, Description: "Marcar como perdida"},
	},
	types.PrintingStatus: {
		{Status: types.ShippedStatus, Direction: Forward, RequiresPayment: true, Description: "Marcar como enviada"},
		{Status: types.PaidStatus, Direction: Backward, Description: "Volver a pagada"},
		{Status: types.LostStatus, Direction: Special, Description: "Marcar como perdida"},
	},
	types.ShippedStatus: {
		{Status: types.ActiveStatus, Direction: Forward, RequiresPayment: true, Description: "Activar perfil"},
		{Status: types.PrintingStatus, Direction: Backward, Description: "Volver a impresión"},
		{Status: types.LostStatus, Direction: Special, Description: "Marcar como perdida"},
	},
	types.ActiveStatus: {
		{Status: types.ShippedStatus, Direction: Backward, Description: "Desactivar (volver a enviada)"},
		{Status: types.LostStatus, Direction: Special, Description: "Marcar como perdida"},
	},
	types.LostStatus: {
		{Status: types.OrderedStatus, Direction: Forward, Description: "Reiniciar orden"},
	},
	types.RejectedStatus: {
		{Status: types.OrderedStatus, Direction: Forward, Description: "Reintentar pago"},
		{Status: types.CancelledStatus, Direction: Special, Description: "Cancelar orden"},
	},
	types.CancelledStatus: {
		{Status: types.OrderedStatus, Direction: Forward, Description: "Reiniciar orden"},
	},
}

// StatusTransitionCatalog returns every edge listed for current, allowed or not.
func StatusTransitionCatalog(current types.OrderStatus) []OrderStatusTransition {
	row := statusCatalog[current]
	result := make([]OrderStatusTransition, len(row))
	copy(result, row)
	return result
}

func AvailableStatusTransitions(current types.OrderStatus, info types.PaymentInfo) []OrderStatusTransition {
	result := make([]OrderStatusTransition, 0, len(statusCatalog[current]))
	for _, t := range statusCatalog[current] {
		if IsValidStatusTransition(current, t.Status, info) {
			result = append(result, t)
		}
	}
	return result
}

// SuggestNextStatus returns the first forward move available, or nil.
func SuggestNextStatus(current types.OrderStatus, info types.PaymentInfo) *types.OrderStatus {
	for _, t := range AvailableStatusTransitions(current, info) {
		if t.Direction == Forward {
			next := t.Status
			return &next
		}
	}
	return nil
}
