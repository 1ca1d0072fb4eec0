package types

import "time"

type OrderStatus string

const (
	OrderedStatus   OrderStatus = "ORDERED"
	PaidStatus      OrderStatus = "PAID"
	PrintingStatus  OrderStatus = "PRINTING"
	ShippedStatus   OrderStatus = "SHIPPED"
	ActiveStatus    OrderStatus = "ACTIVE"
	LostStatus      OrderStatus = "LOST"
	RejectedStatus  OrderStatus = "REJECTED"
	CancelledStatus OrderStatus = "CANCELLED"
)

var AllOrderStatuses = []OrderStatus{
	OrderedStatus,
	PaidStatus,
	PrintingStatus,
	ShippedStatus,
	ActiveStatus,
	LostStatus,
	RejectedStatus,
	CancelledStatus,
}

func (s OrderStatus) IsValid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

type OrderRecord struct {
	OrderID      int         `db:"id" json:"id"`
	OrderNum     string      `db:"order_number" json:"orderNumber"`
	PublicCode   string      `db:"public_code" json:"publicCode"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	Email        string      `db:"email" json:"email"`
	AmountCents  int64       `db:"amount_cents" json:"amountCents"`
	Currency     string      `db:"currency" json:"currency"`
	Status       OrderStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

type NewOrder struct {
	OrderNum     string `json:"orderNumber"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
}

// OrderWithPayments is a consistent snapshot of an order and every payment attached to it.
type OrderWithPayments struct {
	Order    OrderRecord
	Payments []PaymentRecord
}
