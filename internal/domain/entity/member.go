package entity

import "time"

// Member is the record materialized after a request is approved, verified,
// and the applicant authenticates for the first time. Keyed by normalized
// email, which acts as the natural unique constraint.
type Member struct {
	Email       string
	Name        string
	Company     string
	Role        string
	ApprovedAt  time.Time
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// NewMemberFromRequest derives a Member from an approved, verified request.
func NewMemberFromRequest(req *MembershipRequest, now time.Time) *Member {
	approvedAt := req.UpdatedAt
	if approvedAt.IsZero() {
		approvedAt = now
	}

	return &Member{
		Email:       req.Email,
		Name:        req.Name,
		Company:     req.Company,
		Role:        req.Role,
		ApprovedAt:  approvedAt,
		CreatedAt:   now,
		LastLoginAt: now,
	}
}

// UserProfile holds per-user storefront state. The profile is created lazily
// on first authenticated dashboard access and carries the authoritative
// loyalty point balance.
type UserProfile struct {
	UserID         string
	Email          string
	DisplayName    string
	LoyaltyPoints  int // non-negative running balance
	HasSetPassword bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
