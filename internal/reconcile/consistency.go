package reconcile

import "github.com/wellywell/safetap/internal/types"

type ConsistencyReport struct {
	IsConsistent bool     `json:"isConsistent"`
	Issues       []string `json:"issues"`
}

const (
	IssueActiveWithPending      = "Activa con pagos pendientes"
	IssuePaidWithoutConfirmed   = "Pagada sin pago confirmado"
	IssueShippedOnlyPending     = "Enviada con solo pagos pendientes"
	IssueShippedWithoutPayments = "Enviada sin pagos registrados"
	IssueActiveWithoutPayments  = "Activa sin pagos registrados"
	IssueActiveWithoutConfirmed = "Activa sin pago confirmado"
	IssueOrderedWithConfirmed   = "Orden creada con pago confirmado - debería estar pagada"
	IssueOrderedWithRejected    = "Orden creada con pago rechazado - debería estar rechazada"
)

// CheckOrderConsistency lists every disagreement between the stored status
// and the payments. Checks are independent, so one order can collect several
// issues.
func CheckOrderConsistency(current types.OrderStatus, info types.PaymentInfo) ConsistencyReport {
	issues := []string{}

	if current == types.ActiveStatus && info.HasPendingPayment {
		issues = append(issues, IssueActiveWithPending)
	}
	if current == types.PaidStatus && !info.HasConfirmedPayment {
		issues = append(issues, IssuePaidWithoutConfirmed)
	}
	if current == types.ShippedStatus && !info.HasConfirmedPayment && info.HasPendingPayment {
		issues = append(issues, IssueShippedOnlyPending)
	}
	if current == types.ShippedStatus && info.PaymentCount == 0 {
		issues = append(issues, IssueShippedWithoutPayments)
	}
	if current == types.ActiveStatus && info.PaymentCount == 0 {
		issues = append(issues, IssueActiveWithoutPayments)
	}
	if current == types.ActiveStatus && !info.HasConfirmedPayment {
		issues = append(issues, IssueActiveWithoutConfirmed)
	}
	if current == types.OrderedStatus && info.HasConfirmedPayment {
		issues = append(issues, IssueOrderedWithConfirmed)
	}
	if current == types.OrderedStatus && info.HasRejectedPayment {
		issues = append(issues, IssueOrderedWithRejected)
	}

	return ConsistencyReport{
		IsConsistent: len(issues) == 0,
		Issues:       issues,
	}
}
