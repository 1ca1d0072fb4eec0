package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/safetap/internal/types"
)

func statusesOf(transitions []OrderStatusTransition) []types.OrderStatus {
	result := []types.OrderStatus{}
	for _, t := range transitions {
		result = append(result, t.Status)
	}
	return result
}

func TestCatalogMatchesValidator(t *testing.T) {
	for _, current := range types.AllOrderStatuses {
		for _, info := range allPaymentInfos() {
			want := []types.OrderStatus{}
			for _, edge := range StatusTransitionCatalog(current) {
				if IsValidStatusTransition(current, edge.Status, info) {
					want = append(want, edge.Status)
				}
			}
			assert.Equal(t, want, statusesOf(AvailableStatusTransitions(current, info)), "current %s", current)
		}
	}
}

// Every edge the validator can ever allow must be listed in the catalog.
func TestCatalogCoversValidator(t *testing.T) {
	full := types.PaymentInfo{Currency: "EUR", HasConfirmedPayment: true, PaymentCount: 1}
	for _, current := range types.AllOrderStatuses {
		listed := statusesOf(StatusTransitionCatalog(current))
		for _, candidate := range types.AllOrderStatuses {
			if IsValidStatusTransition(current, candidate, full) {
				assert.Contains(t, listed, candidate, "%s to %s missing from catalog", current, candidate)
			}
		}
	}
}

func TestCatalogRequiresPaymentFlag(t *testing.T) {
	for _, current := range types.AllOrderStatuses {
		for _, edge := range StatusTransitionCatalog(current) {
			gated := !IsValidStatusTransition(current, edge.Status, noPayments) &&
				IsValidStatusTransition(current, edge.Status, confirmed)
			assert.Equal(t, gated, edge.RequiresPayment, "%s to %s", current, edge.Status)
		}
	}
}

func TestTerminalRestart(t *testing.T) {
	for _, info := range allPaymentInfos() {
		got := AvailableStatusTransitions(types.LostStatus, info)
		require.Len(t, got, 1)
		assert.Equal(t, types.OrderedStatus, got[0].Status)
		assert.Equal(t, Forward, got[0].Direction)
	}
}

func TestAvailableStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		current types.OrderStatus
		info    types.PaymentInfo
		want    []types.OrderStatus
	}{
		{"ordered", types.OrderedStatus, noPayments, []types.OrderStatus{types.PaidStatus, types.RejectedStatus, types.LostStatus}},
		{"paid unconfirmed", types.PaidStatus, pending, []types.OrderStatus{types.OrderedStatus, types.RejectedStatus, types.LostStatus}},
		{"paid confirmed", types.PaidStatus, confirmed, []types.OrderStatus{types.PrintingStatus, types.OrderedStatus, types.RejectedStatus, types.LostStatus}},
		{"shipped with pending", types.ShippedStatus, mixed, []types.OrderStatus{types.PrintingStatus, types.LostStatus}},
		{"active", types.ActiveStatus, confirmed, []types.OrderStatus{types.ShippedStatus, types.LostStatus}},
		{"rejected", types.RejectedStatus, noPayments, []types.OrderStatus{types.OrderedStatus, types.CancelledStatus}},
		{"unknown", types.OrderStatus("ARCHIVED"), confirmed, []types.OrderStatus{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusesOf(AvailableStatusTransitions(tc.current, tc.info)))
		})
	}
}

func TestSuggestNextStatus(t *testing.T) {
	next := SuggestNextStatus(types.PaidStatus, confirmed)
	require.NotNil(t, next)
	assert.Equal(t, types.PrintingStatus, *next)

	assert.Nil(t, SuggestNextStatus(types.PaidStatus, pending))
	assert.Nil(t, SuggestNextStatus(types.ActiveStatus, confirmed))

	next = SuggestNextStatus(types.CancelledStatus, noPayments)
	require.NotNil(t, next)
	assert.Equal(t, types.OrderedStatus, *next)
}

func TestStatusTransitionCatalogReturnsCopy(t *testing.T) {
	row := StatusTransitionCatalog(types.OrderedStatus)
	row[0].Status = types.CancelledStatus

	assert.Equal(t, types.PaidStatus, StatusTransitionCatalog(types.OrderedStatus)[0].Status)
}
