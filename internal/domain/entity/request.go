// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// MemberType distinguishes the two application forms.
type MemberType string

const (
	MemberTypePrivate MemberType = "private"
	MemberTypeTrade   MemberType = "trade"
)

// RequestStatus is the admin decision state of a membership application.
// Transitions are one-way: pending -> approved or pending -> rejected.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// MembershipRequest is a pending or decided application for member access.
// It is owned by the admin workflow until a Member is derived from it, and
// is never deleted by the application.
type MembershipRequest struct {
	ID         string
	MemberType MemberType
	Name       string
	Email      string // normalized: lowercased, trimmed

	// Private applicant fields.
	Phone   string
	Message string

	// Trade applicant fields.
	Company       string
	Role          string
	BusinessType  string
	MonthlyVolume string

	Status          RequestStatus
	RejectionReason string

	// EmailVerified becomes true only after Status is approved and the
	// applicant follows the emailed verification link.
	EmailVerified bool

	// VerificationToken is minted once at approval time and cleared on use.
	VerificationToken string
	TokenExpiresAt    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanVerify reports whether the request can accept an email verification at
// the given time: approved, token present and not yet expired.
func (r *MembershipRequest) CanVerify(now time.Time) bool {
	return r.Status == RequestStatusApproved &&
		r.VerificationToken != "" &&
		now.Before(r.TokenExpiresAt)
}
