package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wellywell/safetap/internal/db"
	"github.com/wellywell/safetap/internal/types"
)

// fakeStore keeps orders in memory and follows the same payment rules as the
// Postgres implementation.
type fakeStore struct {
	mu       sync.Mutex
	admins   map[string]string
	orders   []types.OrderRecord
	payments []types.PaymentRecord
	pingErr  error
	now      time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		admins: map[string]string{},
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Minute)
	return s.now
}

func (s *fakeStore) addOrder(status types.OrderStatus, payments ...types.PaymentStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := len(s.orders) + 1
	s.orders = append(s.orders, types.OrderRecord{
		OrderID:     id,
		OrderNum:    fmt.Sprintf("order-%d", id),
		AmountCents: 1990,
		Currency:    "EUR",
		Status:      status,
	})
	for _, p := range payments {
		s.payments = append(s.payments, types.PaymentRecord{
			PaymentID:   len(s.payments) + 1,
			OrderID:     id,
			AmountCents: 1990,
			Currency:    "EUR",
			Status:      p,
			CreatedAt:   s.tick(),
		})
	}
	return id
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *fakeStore) GetAdminHashedPassword(ctx context.Context, username string) (string, error) {
	hash, ok := s.admins[username]
	if !ok {
		return "", fmt.Errorf("%w", &db.UserNotFoundError{Username: username})
	}
	return hash, nil
}

func (s *fakeStore) CreateOrder(ctx context.Context, order types.NewOrder) (*types.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.OrderNum == order.OrderNum {
			return nil, fmt.Errorf("%w", &db.OrderExistsError{Order: order.OrderNum})
		}
	}
	record := types.OrderRecord{
		OrderID:      len(s.orders) + 1,
		OrderNum:     order.OrderNum,
		PublicCode:   "code",
		CustomerName: order.CustomerName,
		Email:        order.Email,
		AmountCents:  order.AmountCents,
		Currency:     order.Currency,
		Status:       types.OrderedStatus,
		CreatedAt:    s.tick(),
	}
	s.orders = append(s.orders, record)
	return &record, nil
}

func (s *fakeStore) AddPayment(ctx context.Context, orderNum string, payment types.NewPayment) (*types.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.OrderNum != orderNum {
			continue
		}
		record := types.PaymentRecord{
			PaymentID:   len(s.payments) + 1,
			OrderID:     o.OrderID,
			AmountCents: payment.AmountCents,
			Currency:    payment.Currency,
			Status:      types.PaymentPending,
			Reference:   payment.Reference,
			CreatedAt:   s.tick(),
		}
		s.payments = append(s.payments, record)
		return &record, nil
	}
	return nil, fmt.Errorf("%w", &db.OrderNotFoundError{OrderNum: orderNum})
}

func (s *fakeStore) snapshot(o types.OrderRecord) *types.OrderWithPayments {
	result := &types.OrderWithPayments{Order: o}
	for _, p := range s.payments {
		if p.OrderID == o.OrderID {
			result.Payments = append(result.Payments, p)
		}
	}
	return result
}

func (s *fakeStore) GetOrder(ctx context.Context, orderID int) (*types.OrderWithPayments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderID < 1 || orderID > len(s.orders) {
		return nil, fmt.Errorf("%w", &db.OrderNotFoundError{OrderID: orderID})
	}
	return s.snapshot(s.orders[orderID-1]), nil
}

func (s *fakeStore) GetOrderByNumber(ctx context.Context, orderNum string) (*types.OrderWithPayments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.OrderNum == orderNum {
			return s.snapshot(o), nil
		}
	}
	return nil, fmt.Errorf("%w", &db.OrderNotFoundError{OrderNum: orderNum})
}

func (s *fakeStore) ListOrders(ctx context.Context, startID int, limit int) ([]types.OrderWithPayments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []types.OrderWithPayments{}
	for _, o := range s.orders {
		if o.OrderID > startID && len(result) < limit {
			result = append(result, *s.snapshot(o))
		}
	}
	return result, nil
}

func (s *fakeStore) update(orderID int, decide db.StatusDecision, syncPayments bool) (*types.OrderWithPayments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderID < 1 || orderID > len(s.orders) {
		return nil, fmt.Errorf("%w", &db.OrderNotFoundError{OrderID: orderID})
	}
	current := s.snapshot(s.orders[orderID-1])
	newStatus, err := decide(*current)
	if err != nil {
		return nil, err
	}

	if syncPayments && (newStatus == types.PaidStatus || newStatus == types.RejectedStatus) {
		outcome := types.PaymentVerified
		if newStatus == types.RejectedStatus {
			outcome = types.PaymentRejected
		}
		if len(current.Payments) == 0 {
			s.payments = append(s.payments, types.PaymentRecord{
				PaymentID: len(s.payments) + 1, OrderID: orderID, AmountCents: current.Order.AmountCents,
				Currency: current.Order.Currency, Status: outcome, Reference: "manual", CreatedAt: s.tick(),
			})
		} else {
			for i := len(s.payments) - 1; i >= 0; i-- {
				if s.payments[i].OrderID == orderID && s.payments[i].Status == types.PaymentPending {
					s.payments[i].Status = outcome
					break
				}
			}
		}
	}

	s.orders[orderID-1].Status = newStatus
	return s.snapshot(s.orders[orderID-1]), nil
}

func (s *fakeStore) TransitionOrder(ctx context.Context, orderID int, decide db.StatusDecision) (*types.OrderWithPayments, error) {
	return s.update(orderID, decide, true)
}

func (s *fakeStore) RepairOrder(ctx context.Context, orderID int, decide db.StatusDecision) (*types.OrderWithPayments, error) {
	return s.update(orderID, decide, false)
}

var errStoreDown = errors.New("connection refused")
