package repository

import (
	"context"
	"errors"

	"muziris/internal/domain/entity"
)

// ErrSpiceNotFound is returned when a catalog item does not exist.
var ErrSpiceNotFound = errors.New("spice not found")

// ErrCartNotFound is returned when a user has no cart document yet.
var ErrCartNotFound = errors.New("cart not found")

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrPaymentNotFound is returned when no payment exists for an order.
var ErrPaymentNotFound = errors.New("payment not found")

// SpiceRepository reads the spice catalog.
type SpiceRepository interface {
	List(ctx context.Context) ([]*entity.Spice, error)
	FindByID(ctx context.Context, id string) (*entity.Spice, error)
}

// CartRepository persists the single cart document per user.
type CartRepository interface {
	// FindByUserID retrieves the user's cart, or ErrCartNotFound.
	FindByUserID(ctx context.Context, userID string) (*entity.UserCart, error)

	// Save upserts the cart document (last write wins).
	Save(ctx context.Context, cart *entity.UserCart) error
}

// OrderRepository persists checkout order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)

	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Order, error)

	// UpdatePaymentStatus mutates only paymentStatus and updatedAt; the
	// snapshot fields stay frozen.
	UpdatePaymentStatus(ctx context.Context, id string, status entity.OrderPaymentStatus) error
}

// PaymentRepository persists payment records, one per order.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

// ActivityRepository appends to the write-only activity trail.
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityEntry) error

	// ListByUserID is the only read: a bounded per-user query, newest first.
	ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.ActivityEntry, error)
}
