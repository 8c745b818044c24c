package entity

import "time"

// Activity actions recorded in the trail.
const (
	ActivityOrderPlaced      = "order_placed"
	ActivityPointsEarned     = "points_earned"
	ActivityPointsRedeemed   = "points_redeemed"
	ActivityPaymentConfirmed = "payment_confirmed"
	ActivityMemberCreated    = "member_created"
)

// ActivityEntry is an append-only trail record. It is write-only except for
// a bounded per-user query and is never consulted for business decisions.
type ActivityEntry struct {
	ID          string
	UserID      string
	UserEmail   string
	Action      string
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}
