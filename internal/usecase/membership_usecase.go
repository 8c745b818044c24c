// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"muziris/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitApplicationInput defines the data required to apply for membership.
// Private applicants fill Phone/Message; trade applicants fill
// Company/Role/BusinessType/MonthlyVolume.
type SubmitApplicationInput struct {
	MemberType    entity.MemberType
	Name          string
	Email         string
	Phone         string
	Message       string
	Company       string
	Role          string
	BusinessType  string
	MonthlyVolume string
}

// RejectRequestInput defines the data for an admin rejection.
type RejectRequestInput struct {
	RequestID string
	Reason    string
}

// --- Output DTOs ---

// SubmitApplicationOutput returns the stored request's ID.
type SubmitApplicationOutput struct {
	RequestID string
}

// VerifyEmailOutput returns the verified applicant identity plus a one-time
// setup token authorizing password creation.
type VerifyEmailOutput struct {
	Email      string
	Name       string
	SetupToken string
}

// MembershipUsecase defines the interface for the application lifecycle:
// submission, admin decisions, and email ownership verification.
type MembershipUsecase interface {
	// SubmitApplication validates and stores a new pending request and sends
	// a best-effort acknowledgment email.
	SubmitApplication(ctx context.Context, input *SubmitApplicationInput) (*SubmitApplicationOutput, error)

	// ListRequests returns requests filtered by status (empty = all),
	// newest first. Admin only; authorization happens in delivery.
	ListRequests(ctx context.Context, status entity.RequestStatus) ([]*entity.MembershipRequest, error)

	// ApproveRequest flips a pending request to approved, mints the
	// verification token and sends the setup email. An email failure after
	// the store write surfaces as a distinct partial-failure error.
	ApproveRequest(ctx context.Context, requestID string) error

	// RejectRequest flips a pending request to rejected with an optional
	// reason and sends the rejection email (same partial-failure semantics).
	RejectRequest(ctx context.Context, input *RejectRequestInput) error

	// VerifyEmailByToken consumes a verification token: marks the request
	// email-verified, clears the token and hands back a one-time setup token.
	VerifyEmailByToken(ctx context.Context, token string) (*VerifyEmailOutput, error)
}
