package reconcile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wellywell/safetap/internal/types"
)

var (
	noPayments = types.PaymentInfo{Currency: "EUR"}
	confirmed  = types.PaymentInfo{Currency: "EUR", HasConfirmedPayment: true, PaymentCount: 1}
	mixed      = types.PaymentInfo{Currency: "EUR", HasConfirmedPayment: true, HasPendingPayment: true, PaymentCount: 2}
	pending    = types.PaymentInfo{Currency: "EUR", HasPendingPayment: true, PaymentCount: 1}
)

func TestIsValidStatusTransition(t *testing.T) {

	tests := []struct {
		from types.OrderStatus
		to   types.OrderStatus
		info types.PaymentInfo
		want bool
	}{
		{types.OrderedStatus, types.PaidStatus, noPayments, true},
		{types.OrderedStatus, types.LostStatus, noPayments, true},
		{types.OrderedStatus, types.PrintingStatus, confirmed, false},
		{types.OrderedStatus, types.CancelledStatus, noPayments, false},
		{types.PaidStatus, types.PrintingStatus, confirmed, true},
		{types.PaidStatus, types.PrintingStatus, pending, false},
		{types.PaidStatus, types.OrderedStatus, noPayments, true},
		{types.PaidStatus, types.ShippedStatus, confirmed, false},
		{types.PrintingStatus, types.ShippedStatus, confirmed, true},
		{types.PrintingStatus, types.ShippedStatus, noPayments, false},
		{types.PrintingStatus, types.PaidStatus, noPayments, true},
		{types.ShippedStatus, types.ActiveStatus, confirmed, true},
		{types.ShippedStatus, types.ActiveStatus, mixed, false},
		{types.ShippedStatus, types.PrintingStatus, noPayments, true},
		{types.ActiveStatus, types.ShippedStatus, noPayments, true},
		{types.ActiveStatus, types.ActiveStatus, confirmed, false},
		{types.LostStatus, types.OrderedStatus, noPayments, true},
		{types.LostStatus, types.PaidStatus, confirmed, false},
		{types.RejectedStatus, types.OrderedStatus, noPayments, true},
		{types.RejectedStatus, types.CancelledStatus, noPayments, true},
		{types.RejectedStatus, types.PaidStatus, confirmed, false},
		{types.CancelledStatus, types.OrderedStatus, noPayments, true},
		{types.CancelledStatus, types.LostStatus, noPayments, false},
		{types.OrderStatus("ARCHIVED"), types.OrderedStatus, confirmed, false},
		{types.OrderedStatus, types.OrderStatus("ARCHIVED"), confirmed, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidStatusTransition(tt.from, tt.to, tt.info))
		})
	}
}

func TestRejectedOnlyFromOrderedOrPaid(t *testing.T) {
	for _, from := range types.AllOrderStatuses {
		for _, info := range allPaymentInfos() {
			want := from == types.OrderedStatus || from == types.PaidStatus
			assert.Equal(t, want, IsValidStatusTransition(from, types.RejectedStatus, info), "from %s", from)
		}
	}
}

func TestLostAlwaysReachableFromFulfilment(t *testing.T) {
	for _, from := range []types.OrderStatus{types.PaidStatus, types.PrintingStatus, types.ShippedStatus, types.ActiveStatus} {
		for _, info := range allPaymentInfos() {
			assert.True(t, IsValidStatusTransition(from, types.LostStatus, info), "from %s", from)
		}
	}
}

func TestPaymentGatedTransitions(t *testing.T) {
	for _, info := range allPaymentInfos() {
		assert.Equal(t, info.HasConfirmedPayment, IsValidStatusTransition(types.PaidStatus, types.PrintingStatus, info))
		assert.Equal(t, info.HasConfirmedPayment, IsValidStatusTransition(types.PrintingStatus, types.ShippedStatus, info))
		assert.Equal(t, info.HasConfirmedPayment && !info.HasPendingPayment,
			IsValidStatusTransition(types.ShippedStatus, types.ActiveStatus, info))
	}
}

func TestIsValidStatusTransitionIsTotal(t *testing.T) {
	statuses := append([]types.OrderStatus{"", "ARCHIVED"}, types.AllOrderStatuses...)
	for _, from := range statuses {
		for _, to := range statuses {
			for _, info := range allPaymentInfos() {
				assert.NotPanics(t, func() { IsValidStatusTransition(from, to, info) })
			}
		}
	}
}

func TestValidateStatusTransition(t *testing.T) {
	assert.NoError(t, ValidateStatusTransition(types.OrderedStatus, types.PaidStatus, noPayments))

	err := ValidateStatusTransition(types.LostStatus, types.ActiveStatus, confirmed)
	var invalid *InvalidTransitionError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, types.LostStatus, invalid.From)
	assert.Equal(t, types.ActiveStatus, invalid.To)

	err = ValidateStatusTransition(types.OrderedStatus, "SOLD", confirmed)
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "unknown status")
}
