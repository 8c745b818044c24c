package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderPaymentStatus tracks the payment side of an order. Only this field
// (and UpdatedAt) may change after the order is created; the item snapshot
// and totals are immutable.
type OrderPaymentStatus string

const (
	OrderPaymentPending   OrderPaymentStatus = "pending"
	OrderPaymentConfirmed OrderPaymentStatus = "confirmed"
	OrderPaymentFailed    OrderPaymentStatus = "failed"
)

// Order is an immutable snapshot of cart contents and computed totals at
// checkout time.
type Order struct {
	ID                  string
	OrderNumber         string
	UserID              string
	UserEmail           string
	UserName            string
	Items               []CartItem
	Subtotal            float64
	Discount            float64
	Total               float64
	LoyaltyPointsEarned int
	LoyaltyPointsUsed   int
	PaymentStatus       OrderPaymentStatus
	PaymentMethod       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewOrderNumber builds a human-readable, collision-resistant order number:
// the HOM prefix, the order date, and the first segment of a fresh UUID.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("HOM-%s-%s", now.Format("20060102"), uuid.NewString()[:8])
}

// PaymentState is the operator-confirmed state of a payment record.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentSuccess PaymentState = "success"
	PaymentFailed  PaymentState = "failed"
)

// Payment records the manual UPI hand-off for one order. Status is confirmed
// by the payer pressing "I've paid" and later verified by an operator; there
// is no gateway callback.
type Payment struct {
	ID            string
	PaymentID     string
	OrderID       string
	OrderNumber   string
	UserID        string
	UserEmail     string
	Amount        float64
	Currency      string
	PaymentMethod string
	Status        PaymentState
	UPIID         string
	TransactionID string
	CreatedAt     time.Time
	VerifiedAt    time.Time
}
