package handlers

import (
	"github.com/wellywell/safetap/internal/reconcile"
	"github.com/wellywell/safetap/internal/types"
)

// OrderView is the backoffice representation of one order: the stored record
// plus everything the listing needs to render badges and action buttons.
type OrderView struct {
	types.OrderRecord
	Payments             []types.PaymentRecord             `json:"payments"`
	PaymentInfo          types.PaymentInfo                 `json:"paymentInfo"`
	PaymentDisplay       reconcile.PaymentDisplayInfo      `json:"paymentDisplay"`
	DisplayStatus        reconcile.DisplayState            `json:"displayStatus"`
	AvailableTransitions []reconcile.OrderStatusTransition `json:"availableTransitions"`
	SuggestedNext        *types.OrderStatus                `json:"suggestedNext"`
	Consistency          reconcile.ConsistencyReport       `json:"consistency"`
}

func NewOrderView(o types.OrderWithPayments) OrderView {
	payments := o.Payments
	if payments == nil {
		payments = []types.PaymentRecord{}
	}
	info := reconcile.AnalyzePayments(payments)
	status := o.Order.Status

	return OrderView{
		OrderRecord:          o.Order,
		Payments:             payments,
		PaymentInfo:          info,
		PaymentDisplay:       reconcile.PaymentDisplay(info),
		DisplayStatus:        reconcile.DisplayStatus(status, info),
		AvailableTransitions: reconcile.AvailableStatusTransitions(status, info),
		SuggestedNext:        reconcile.SuggestNextStatus(status, info),
		Consistency:          reconcile.CheckOrderConsistency(status, info),
	}
}

// PublicOrderView is what a customer sees when following up on an order.
type PublicOrderView struct {
	OrderNum string                       `json:"orderNumber"`
	Status   types.OrderStatus            `json:"status"`
	Payment  reconcile.PaymentDisplayInfo `json:"payment"`
}

func NewPublicOrderView(o types.OrderWithPayments) PublicOrderView {
	info := reconcile.AnalyzePayments(o.Payments)
	return PublicOrderView{
		OrderNum: o.Order.OrderNum,
		Status:   reconcile.DisplayStatus(o.Order.Status, info).PrimaryStatus,
		Payment:  reconcile.PaymentDisplay(info),
	}
}

type InconsistentOrder struct {
	OrderID         int               `json:"id"`
	OrderNum        string            `json:"orderNumber"`
	Status          types.OrderStatus `json:"status"`
	SuggestedStatus types.OrderStatus `json:"suggestedStatus"`
	Issues          []string          `json:"issues"`
}

type ConsistencyResponse struct {
	Checked      int                 `json:"checked"`
	Inconsistent []InconsistentOrder `json:"inconsistent"`
}
