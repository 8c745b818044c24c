// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"muziris/internal/domain/entity"
)

// ErrRequestNotFound is a domain-specific error returned when a membership
// request is not found.
var ErrRequestNotFound = errors.New("membership request not found")

// RequestRepository defines the standard operations for membership request
// persistence. The application layer will depend on this interface, not the
// concrete implementation.
type RequestRepository interface {
	// Create persists a new request with a generated ID and returns it.
	Create(ctx context.Context, req *entity.MembershipRequest) error

	// FindByID retrieves a single request by its document ID.
	FindByID(ctx context.Context, id string) (*entity.MembershipRequest, error)

	// FindByVerificationToken retrieves an approved request holding the
	// exact token, or ErrRequestNotFound.
	FindByVerificationToken(ctx context.Context, token string) (*entity.MembershipRequest, error)

	// FindApprovedByEmail retrieves the approved request for a normalized
	// email, or ErrRequestNotFound when none exists.
	FindApprovedByEmail(ctx context.Context, email string) (*entity.MembershipRequest, error)

	// ListByStatus returns requests with the given status ordered by
	// creation time descending. An empty status returns all requests.
	ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.MembershipRequest, error)

	// Update overwrites a request document.
	Update(ctx context.Context, req *entity.MembershipRequest) error
}
