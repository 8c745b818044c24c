package repository

import (
	"context"
	"errors"
	"time"

	"muziris/internal/domain/entity"
)

// ErrMemberNotFound is returned when no member record exists for an email.
var ErrMemberNotFound = errors.New("member not found")

// ErrProfileNotFound is returned when no profile exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

// MemberRepository persists derived member records, keyed by normalized
// email.
type MemberRepository interface {
	// FindByEmail retrieves a member by normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)

	// Create writes the member document at its email key. Creation is
	// idempotent at the usecase level: callers check existence first.
	Create(ctx context.Context, member *entity.Member) error

	// UpdateLastLogin stamps the member's last successful sign-in.
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
}

// ProfileRepository persists per-user storefront profiles, which hold the
// authoritative loyalty point balance.
type ProfileRepository interface {
	// FindByUserID retrieves a profile, or ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)

	// Create persists a new profile document keyed by user ID.
	Create(ctx context.Context, profile *entity.UserProfile) error

	// Update overwrites a profile document.
	Update(ctx context.Context, profile *entity.UserProfile) error
}

// UserProjectionRepository maintains the denormalized loyalty point mirror in
// the users collection. It is a derived view: refreshed best-effort after the
// authoritative profile balance commits, never read for decisions.
type UserProjectionRepository interface {
	SetLoyaltyPoints(ctx context.Context, userID, email string, points int) error
}
