package service

import (
	"context"

	"muziris/internal/domain/entity"
)

// Mailer dispatches templated transactional emails at lifecycle transition
// points. Callers decide whether a failure is surfaced (admin approval) or
// swallowed best-effort (acknowledgments, order confirmations).
type Mailer interface {
	// SendApplicationReceived acknowledges a new membership application.
	SendApplicationReceived(ctx context.Context, to, name string) error

	// SendApprovalWithSetup delivers the approval notice with the account
	// setup link embedding the verification token.
	SendApprovalWithSetup(ctx context.Context, to, name, setupLink string) error

	// SendRejection delivers the rejection notice with an optional reason.
	SendRejection(ctx context.Context, to, name, reason string) error

	// SendLoginLink delivers a one-time sign-in (magic) link.
	SendLoginLink(ctx context.Context, to, link string) error

	// SendOrderConfirmation delivers the order summary after checkout.
	SendOrderConfirmation(ctx context.Context, to, name string, order *entity.Order) error
}
