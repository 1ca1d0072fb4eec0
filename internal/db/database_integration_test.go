//go:build integration_tests
// +build integration_tests

package db

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/safetap/internal/testutils"
	"github.com/wellywell/safetap/internal/types"
)

var DBDSN string

func TestMain(m *testing.M) {
	code, err := runMain(m)

	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

func runMain(m *testing.M) (int, error) {

	databaseDSN, cleanUp, err := testutils.RunTestDatabase()
	defer cleanUp()

	if err != nil {
		return 1, err
	}
	DBDSN = databaseDSN

	exitCode := m.Run()

	return exitCode, nil
}

func newTestDatabase(t *testing.T) *Database {
	database, err := NewDatabase(DBDSN)
	require.NoError(t, err)
	require.NoError(t, testutils.Truncate(DBDSN))
	t.Cleanup(database.Close)
	return database
}

func newOrder(number string) types.NewOrder {
	return types.NewOrder{OrderNum: number, CustomerName: "Ana", Email: "ana@example.com", AmountCents: 1990, Currency: "EUR"}
}

func keepStatus(status types.OrderStatus) StatusDecision {
	return func(types.OrderWithPayments) (types.OrderStatus, error) {
		return status, nil
	}
}

func TestListOrdersEmptyTable(t *testing.T) {
	database := newTestDatabase(t)

	records, err := database.ListOrders(context.Background(), 0, 100)
	assert.NoError(t, err)
	assert.Len(t, records, 0)
}

func TestCreateOrder(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	order, err := database.CreateOrder(ctx, newOrder("79927398713"))
	require.NoError(t, err)
	assert.Equal(t, types.OrderedStatus, order.Status)
	assert.NotEmpty(t, order.PublicCode)

	_, err = database.CreateOrder(ctx, newOrder("79927398713"))
	var exists *OrderExistsError
	assert.ErrorAs(t, err, &exists)

	_, err = database.GetOrder(ctx, 999)
	var notFound *OrderNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTransitionOrderSyncsPayments(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	order, err := database.CreateOrder(ctx, newOrder("79927398713"))
	require.NoError(t, err)

	updated, err := database.TransitionOrder(ctx, order.OrderID, keepStatus(types.PaidStatus))
	require.NoError(t, err)
	assert.Equal(t, types.PaidStatus, updated.Order.Status)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, types.PaymentVerified, updated.Payments[0].Status)
	assert.Equal(t, int64(1990), updated.Payments[0].AmountCents)

	other, err := database.CreateOrder(ctx, newOrder("49927398716"))
	require.NoError(t, err)
	_, err = database.AddPayment(ctx, other.OrderNum, types.NewPayment{AmountCents: 1990, Reference: "TR-1"})
	require.NoError(t, err)
	_, err = database.AddPayment(ctx, other.OrderNum, types.NewPayment{AmountCents: 1990, Reference: "TR-2"})
	require.NoError(t, err)

	updated, err = database.TransitionOrder(ctx, other.OrderID, keepStatus(types.RejectedStatus))
	require.NoError(t, err)
	require.Len(t, updated.Payments, 2)
	assert.Equal(t, types.PaymentPending, updated.Payments[0].Status)
	assert.Equal(t, types.PaymentRejected, updated.Payments[1].Status)
}

func TestRepairOrderLeavesPayments(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	order, err := database.CreateOrder(ctx, newOrder("79927398713"))
	require.NoError(t, err)
	_, err = database.AddPayment(ctx, order.OrderNum, types.NewPayment{AmountCents: 1990, Reference: "TR-1"})
	require.NoError(t, err)

	updated, err := database.RepairOrder(ctx, order.OrderID, keepStatus(types.PaidStatus))
	require.NoError(t, err)
	assert.Equal(t, types.PaidStatus, updated.Order.Status)
	assert.Equal(t, types.PaymentPending, updated.Payments[0].Status)
}

func TestPendingPayments(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()

	order, err := database.CreateOrder(ctx, newOrder("79927398713"))
	require.NoError(t, err)
	payment, err := database.AddPayment(ctx, order.OrderNum, types.NewPayment{AmountCents: 1990, Reference: "TR-1"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", payment.Currency)

	pending, err := database.GetPendingPayments(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, database.UpdatePendingPayment(ctx, payment.PaymentID, types.PaymentVerified))
	err = database.UpdatePendingPayment(ctx, payment.PaymentID, types.PaymentRejected)
	assert.ErrorIs(t, err, ErrPaymentNotPending)

	pending, err = database.GetPendingPayments(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, pending, 0)
}
