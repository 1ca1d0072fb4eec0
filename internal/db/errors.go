package db

import (
	"errors"
	"fmt"
)

var ErrPaymentNotPending = errors.New("payment is not pending")

type UserExistsError struct {
	Username string
}

func (e *UserExistsError) Error() string {
	return fmt.Sprintf("User %s exists", e.Username)
}

type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User %s not found", e.Username)
}

type OrderExistsError struct {
	Order string
}

func (e *OrderExistsError) Error() string {
	return fmt.Sprintf("Order %s already exists", e.Order)
}

// OrderNotFoundError carries either the numeric id or the order number that was looked up.
type OrderNotFoundError struct {
	OrderID  int
	OrderNum string
}

func (e *OrderNotFoundError) Error() string {
	if e.OrderNum != "" {
		return fmt.Sprintf("Order %s not found", e.OrderNum)
	}
	return fmt.Sprintf("Order %d not found", e.OrderID)
}
