package usecase

import (
	"context"

	"muziris/internal/domain/entity"
)

// CartUsecase defines catalog browsing and cart editing. The user ID is the
// member's normalized email.
type CartUsecase interface {
	// ListSpices returns the catalog, falling back to the built-in sample
	// set when the collection is empty.
	ListSpices(ctx context.Context) ([]*entity.Spice, error)

	// GetCart returns the user's cart, or an empty cart if none exists yet.
	GetCart(ctx context.Context, userID string) (*entity.UserCart, error)

	// AddItem inserts a line with quantity one or increments an existing
	// line, and returns the updated cart.
	AddItem(ctx context.Context, userID, spiceID string) (*entity.UserCart, error)

	// SetQuantity updates a line's quantity. Zero removes the line; a
	// positive quantity for a spice not in the cart inserts one line.
	SetQuantity(ctx context.Context, userID, spiceID string, quantity int) (*entity.UserCart, error)
}
