// Package reconcile holds the sticker order lifecycle rules: which status
// changes are allowed, how an order should be shown when its stored status and
// its payments disagree, and how payments are summarised for the backoffice.
//
// Everything here is a pure function of its arguments.
package reconcile

import (
	"sort"

	"github.com/wellywell/safetap/internal/types"
)

const DefaultCurrency = "EUR"

// AnalyzePayments reduces the payments of one order to a PaymentInfo.
//
// TotalAmount adds up every payment whatever its status. When several payments
// share the newest CreatedAt, the one listed first wins LatestStatus. The
// caller's slice is left untouched.
func AnalyzePayments(payments []types.PaymentRecord) types.PaymentInfo {
	info := types.PaymentInfo{
		Currency:     DefaultCurrency,
		PaymentCount: len(payments),
	}
	if len(payments) == 0 {
		return info
	}

	if payments[0].Currency != "" {
		info.Currency = payments[0].Currency
	}

	for _, p := range payments {
		info.TotalAmount += p.AmountCents
		switch {
		case p.Status.IsConfirmed():
			info.HasConfirmedPayment = true
		case p.Status == types.PaymentPending:
			info.HasPendingPayment = true
		case p.Status == types.PaymentRejected:
			info.HasRejectedPayment = true
		}
	}

	sorted := make([]types.PaymentRecord, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	latest := sorted[0].Status
	info.LatestStatus = &latest

	return info
}
