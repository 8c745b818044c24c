package usecase

import (
	"context"

	"muziris/internal/domain/entity"
)

// --- Input DTOs ---

// CheckoutInput defines the data for placing an order.
type CheckoutInput struct {
	UserID       string // normalized email
	UserName     string
	RedeemPoints int // requested loyalty point redemption, capped server-side
}

// --- Output DTOs ---

// CheckoutOutput returns the committed order, its payment record, and the
// post-checkout loyalty balance.
type CheckoutOutput struct {
	Order         *entity.Order
	Payment       *entity.Payment
	PointsBalance int
}

// CheckoutUsecase defines order placement and the manual payment hand-off.
type CheckoutUsecase interface {
	// Checkout turns the user's cart into an order inside one store
	// transaction: totals, loyalty redemption and accrual, order + payment
	// records, balance update and cart clear all commit or none do.
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)

	// ConfirmPayment records the payer's "I've paid" signal: payment
	// pending->success with a verification timestamp, order pending->confirmed.
	ConfirmPayment(ctx context.Context, userID, orderID string) error

	// PaymentQR renders the UPI QR PNG for an order's pending payment.
	PaymentQR(ctx context.Context, userID, orderID string) ([]byte, error)

	// ListOrders returns the user's order history, newest first.
	ListOrders(ctx context.Context, userID string) ([]*entity.Order, error)
}
