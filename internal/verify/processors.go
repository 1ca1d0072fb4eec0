// Package verify polls the payment provider for payments still marked as
// pending and records the outcome.
package verify

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/safetap/internal/provider"
	"github.com/wellywell/safetap/internal/types"
)

const pageSize = 100

type PaymentUpdate struct {
	payment types.PaymentRecord
	status  types.PaymentStatus
}

type ProviderClient interface {
	GetPaymentStatus(ctx context.Context, reference string) (*provider.PaymentStatus, error)
}

type Database interface {
	GetPendingPayments(ctx context.Context, startID int, limit int) ([]types.PaymentRecord, error)
	UpdatePendingPayment(ctx context.Context, paymentID int, newStatus types.PaymentStatus) error
}

// wait is swapped out in tests.
var wait = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run verifies pending payments until ctx is cancelled, pausing for interval
// after each full pass over the table.
func Run(ctx context.Context, database Database, client ProviderClient, interval time.Duration) error {
	tasks := GenerateVerifyTasks(ctx, database, interval)
	updates := CheckPayments(ctx, tasks, client)
	UpdateStatuses(ctx, updates, database)
	logger.Info("Payment verification stopped")
	return nil
}

func GenerateVerifyTasks(ctx context.Context, database Database, interval time.Duration) <-chan types.PaymentRecord {

	tasks := make(chan types.PaymentRecord)

	go func(ctx context.Context) {
		defer close(tasks)

		startID := 0

		for {
			records, err := database.GetPendingPayments(ctx, startID, pageSize)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Errorf("Could not read pending payments: %s", err)
				if wait(ctx, interval) != nil {
					return
				}
				continue
			}
			if len(records) == 0 {
				logger.Debug("All pending payments were checked")
				startID = 0
				if wait(ctx, interval) != nil {
					return
				}
				continue
			}
			for _, task := range records {
				if task.PaymentID > startID {
					startID = task.PaymentID
				}
				select {
				case <-ctx.Done():
					return
				case tasks <- task:
				}
			}
		}
	}(ctx)

	return tasks
}

func CheckPayments(ctx context.Context, tasks <-chan types.PaymentRecord, client ProviderClient) <-chan PaymentUpdate {

	updates := make(chan PaymentUpdate)

	go func(ctx context.Context) {
		defer close(updates)
		for {
			select {
			case <-ctx.Done():
				logger.Info("Context cancel, stopping payment checks")
				return
			case task, ok := <-tasks:
				if !ok {
					return
				}
				result, err := retryThrottle(ctx, task.Reference, client)
				if err != nil {
					if errors.Is(err, provider.ErrPaymentNotExists) {
						logger.Infof("Payment %s unknown to provider", task.Reference)
						continue
					}
					if errors.Is(err, provider.ErrUnknown) {
						logger.Errorf("Unknown provider error %s", err.Error())
						continue
					}
					logger.Error(err)
					continue
				}
				if result.Status == task.Status {
					continue
				}
				logger.Infof("Got payment update %v", result)
				select {
				case <-ctx.Done():
					return
				case updates <- PaymentUpdate{payment: task, status: result.Status}:
				}
			}
		}
	}(ctx)

	return updates
}

func retryThrottle(ctx context.Context, reference string, client ProviderClient) (*provider.PaymentStatus, error) {

	for {
		result, err := client.GetPaymentStatus(ctx, reference)
		if err == nil {
			return result, nil
		}

		var errThrottle *provider.ErrThrottle
		if !errors.As(err, &errThrottle) {
			return nil, err
		}
		logger.Warningf("Provider too many requests, will retry in %d seconds", errThrottle.RetryAfter)
		if err := wait(ctx, time.Duration(errThrottle.RetryAfter)*time.Second); err != nil {
			return nil, err
		}
	}
}

// UpdateStatuses blocks until updates is closed or ctx is cancelled.
func UpdateStatuses(ctx context.Context, updates <-chan PaymentUpdate, database Database) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-updates:
			if !ok {
				return
			}
			err := database.UpdatePendingPayment(ctx, task.payment.PaymentID, task.status)
			if err != nil {
				logger.Error(err.Error())
			} else {
				logger.WithFields(logger.Fields{
					"payment": task.payment.PaymentID,
					"order":   task.payment.OrderID,
					"status":  task.status,
				}).Info("Updated payment status")
			}
		}
	}
}
