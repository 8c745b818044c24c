package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCart_AddAndIncrement(t *testing.T) {
	cart := &UserCart{UserID: "anjali@example.com"}
	spice := &Spice{ID: "cinnamon-ceylon", Name: "Ceylon Cinnamon", Price: 22.00}

	cart.Add(spice, "line-1")
	cart.Add(spice, "line-2")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "line-1", cart.Items[0].ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 44.00, cart.Subtotal())
	assert.Equal(t, 2, cart.Count())
}

func TestUserCart_SetQuantity(t *testing.T) {
	cart := &UserCart{
		Items: []CartItem{
			{ID: "line-1", SpiceID: "cinnamon-ceylon", Price: 22.00, Quantity: 1},
			{ID: "line-2", SpiceID: "sumac-wild", Price: 18.99, Quantity: 3},
		},
	}

	assert.True(t, cart.SetQuantity("cinnamon-ceylon", 5))
	assert.Equal(t, 5, cart.Items[0].Quantity)

	assert.True(t, cart.SetQuantity("sumac-wild", 0))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "cinnamon-ceylon", cart.Items[0].SpiceID)

	// An absent spice reports false so the caller can insert the line with
	// the catalog snapshot.
	assert.False(t, cart.SetQuantity("unknown", 2))
	assert.Len(t, cart.Items, 1)

	// Removing an absent line is an idempotent no-op.
	assert.True(t, cart.SetQuantity("unknown", 0))
	assert.Len(t, cart.Items, 1)
}

func TestUserCart_Clear(t *testing.T) {
	cart := &UserCart{
		Items: []CartItem{{ID: "line-1", SpiceID: "sumac-wild", Quantity: 1}},
	}

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.00, cart.Subtotal())
}

func TestQuoteRedemption(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		requested int
		balance   int
		quote     LoyaltyQuote
	}{
		{
			name:      "no redemption",
			subtotal:  25.00,
			requested: 0,
			balance:   100,
			quote:     LoyaltyQuote{Subtotal: 25.00, PointsUsed: 0, Discount: 0, Total: 25.00, PointsEarned: 25},
		},
		{
			name:      "partial redemption",
			subtotal:  25.00,
			requested: 60,
			balance:   100,
			quote:     LoyaltyQuote{Subtotal: 25.00, PointsUsed: 60, Discount: 6.00, Total: 19.00, PointsEarned: 19},
		},
		{
			name:      "capped by balance",
			subtotal:  25.00,
			requested: 60,
			balance:   40,
			quote:     LoyaltyQuote{Subtotal: 25.00, PointsUsed: 40, Discount: 4.00, Total: 21.00, PointsEarned: 21},
		},
		{
			name:      "capped by subtotal",
			subtotal:  4.00,
			requested: 200,
			balance:   500,
			quote:     LoyaltyQuote{Subtotal: 4.00, PointsUsed: 40, Discount: 4.00, Total: 0.00, PointsEarned: 0},
		},
		{
			name:      "fractional subtotal floors the cap",
			subtotal:  4.55,
			requested: 100,
			balance:   100,
			quote:     LoyaltyQuote{Subtotal: 4.55, PointsUsed: 45, Discount: 4.50, Total: 0.05, PointsEarned: 0},
		},
		{
			name:      "negative request treated as zero",
			subtotal:  10.00,
			requested: -5,
			balance:   100,
			quote:     LoyaltyQuote{Subtotal: 10.00, PointsUsed: 0, Discount: 0, Total: 10.00, PointsEarned: 10},
		},
		{
			name:      "earn on fractional total floors",
			subtotal:  19.99,
			requested: 0,
			balance:   0,
			quote:     LoyaltyQuote{Subtotal: 19.99, PointsUsed: 0, Discount: 0, Total: 19.99, PointsEarned: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := QuoteRedemption(tt.subtotal, tt.requested, tt.balance, 10, 1)

			assert.Equal(t, tt.quote.PointsUsed, quote.PointsUsed)
			assert.InDelta(t, tt.quote.Discount, quote.Discount, 0.0001)
			assert.InDelta(t, tt.quote.Total, quote.Total, 0.0001)
			assert.Equal(t, tt.quote.PointsEarned, quote.PointsEarned)
		})
	}
}
