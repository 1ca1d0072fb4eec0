package types

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentVerified  PaymentStatus = "VERIFIED"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

var AllPaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentVerified,
	PaymentRejected,
	PaymentPaid,
	PaymentCancelled,
}

func (s PaymentStatus) IsValid() bool {
	for _, known := range AllPaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsConfirmed reports whether money for the payment has been received.
func (s PaymentStatus) IsConfirmed() bool {
	return s == PaymentPaid || s == PaymentVerified
}

type PaymentRecord struct {
	PaymentID   int           `db:"id" json:"id"`
	OrderID     int           `db:"order_id" json:"orderId"`
	AmountCents int64         `db:"amount_cents" json:"amountCents"`
	Currency    string        `db:"currency" json:"currency"`
	Status      PaymentStatus `db:"status" json:"status"`
	Reference   string        `db:"reference" json:"reference"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

type NewPayment struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// PaymentInfo is an aggregate over all payments of one order. It is derived on
// demand and never stored.
type PaymentInfo struct {
	TotalAmount         int64          `json:"totalAmount"`
	Currency            string         `json:"currency"`
	HasConfirmedPayment bool           `json:"hasConfirmedPayment"`
	HasPendingPayment   bool           `json:"hasPendingPayment"`
	HasRejectedPayment  bool           `json:"hasRejectedPayment"`
	LatestStatus        *PaymentStatus `json:"latestStatus"`
	PaymentCount        int            `json:"paymentCount"`
}
