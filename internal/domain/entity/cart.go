package entity

import (
	"math"
	"time"
)

// Spice is a catalog item available to members.
type Spice struct {
	ID          string
	Name        string
	Origin      string
	Description string
	Price       float64 // primary currency, per unit
	Unit        string
	InStock     bool
}

// CartItem is one line of a member's cart. Quantity is always >= 1 for an
// entry that exists; setting it to zero removes the line.
type CartItem struct {
	ID       string
	SpiceID  string
	Name     string
	Price    float64
	Quantity int
}

// UserCart is the single cart document per user.
type UserCart struct {
	UserID    string
	Items     []CartItem
	UpdatedAt time.Time
}

// Add inserts a new line with quantity one, or increments an existing line
// for the same spice.
func (c *UserCart) Add(spice *Spice, lineID string) {
	for i := range c.Items {
		if c.Items[i].SpiceID == spice.ID {
			c.Items[i].Quantity++

			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:       lineID,
		SpiceID:  spice.ID,
		Name:     spice.Name,
		Price:    spice.Price,
		Quantity: 1,
	})
}

// SetQuantity sets the quantity for a spice's line and reports whether the
// cart had a line to apply it to. Zero removes the line. A positive quantity
// for an absent spice returns false; inserting the line needs the catalog
// name and price, so the caller resolves the spice and inserts through Add.
func (c *UserCart) SetQuantity(spiceID string, quantity int) bool {
	if quantity <= 0 {
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.SpiceID != spiceID {
				kept = append(kept, item)
			}
		}
		c.Items = kept

		return true
	}

	for i := range c.Items {
		if c.Items[i].SpiceID == spiceID {
			c.Items[i].Quantity = quantity

			return true
		}
	}

	return false
}

// Clear empties the cart after a successful checkout.
func (c *UserCart) Clear() {
	c.Items = []CartItem{}
}

// Subtotal is the sum of price times quantity over all lines.
func (c *UserCart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}

	return sum
}

// Count is the total number of units across all lines.
func (c *UserCart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}

	return n
}

// LoyaltyQuote is the computed outcome of applying a point redemption to a
// cart subtotal.
type LoyaltyQuote struct {
	Subtotal     float64
	PointsUsed   int
	Discount     float64
	Total        float64
	PointsEarned int
}

// QuoteRedemption applies the loyalty arithmetic: the redeemed amount is
// capped by the requested points, the available balance, and
// floor(subtotal * redeemPerUnit) so a redemption can never push the order
// total negative. Earned points accrue on the discounted total.
func QuoteRedemption(subtotal float64, requested, balance, redeemPerUnit, earnPerUnit int) LoyaltyQuote {
	if requested < 0 {
		requested = 0
	}

	cap := int(math.Floor(subtotal * float64(redeemPerUnit)))
	used := min(requested, balance, cap)

	discount := float64(used) / float64(redeemPerUnit)
	total := subtotal - discount

	return LoyaltyQuote{
		Subtotal:     subtotal,
		PointsUsed:   used,
		Discount:     discount,
		Total:        total,
		PointsEarned: int(math.Floor(total)) * earnPerUnit,
	}
}
