package reconcile

import (
	"time"

	"github.com/wellywell/safetap/internal/types"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func payment(amount int64, status types.PaymentStatus, minutes int) types.PaymentRecord {
	return types.PaymentRecord{
		AmountCents: amount,
		Currency:    "EUR",
		Status:      status,
		CreatedAt:   baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

// allPaymentInfos enumerates every combination of flags a real payment list can produce.
func allPaymentInfos() []types.PaymentInfo {
	infos := []types.PaymentInfo{{Currency: DefaultCurrency}}
	for _, confirmed := range []bool{false, true} {
		for _, pending := range []bool{false, true} {
			for _, rejected := range []bool{false, true} {
				if !confirmed && !pending && !rejected {
					continue
				}
				count := 0
				for _, set := range []bool{confirmed, pending, rejected} {
					if set {
						count++
					}
				}
				infos = append(infos, types.PaymentInfo{
					Currency:            DefaultCurrency,
					HasConfirmedPayment: confirmed,
					HasPendingPayment:   pending,
					HasRejectedPayment:  rejected,
					PaymentCount:        count,
				})
			}
		}
	}
	return infos
}
