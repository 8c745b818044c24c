package usecase

import "context"

// --- Input DTOs ---

// SetupPasswordInput carries the one-time setup token from email
// verification plus the chosen password.
type SetupPasswordInput struct {
	SetupToken string
	Password   string
}

// LoginInput defines the data required for a password sign-in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginLinkInput requests a one-time sign-in link.
type LoginLinkInput struct {
	Email string

	// Origin overrides the configured base URL when building the emailed
	// link (the admin console may live on a separate host).
	Origin string

	// ClientIP keys the rate limit for the admin-link endpoint.
	ClientIP string
}

// --- Output DTOs ---

// LoginStartOutput answers the email step of the sign-in flow.
type LoginStartOutput struct {
	Email string
	Name  string

	// NeedsSetup is true when the member is approved and verified but has
	// not created a password yet.
	NeedsSetup bool
}

// AuthTokensOutput returns the issued token pair and the identity it binds.
type AuthTokensOutput struct {
	AccessToken  string
	RefreshToken string
	Email        string
	Name         string
	IsAdmin      bool
}

// AuthUsecase defines the interface for authentication operations.
type AuthUsecase interface {
	// LoginStart performs the email step: gates on an approved, verified
	// membership and reports whether password setup is still pending.
	LoginStart(ctx context.Context, email string) (*LoginStartOutput, error)

	// SetupPassword consumes a setup token, stores the bcrypt credential,
	// derives the Member and profile, and issues a session.
	SetupPassword(ctx context.Context, input *SetupPasswordInput) (*AuthTokensOutput, error)

	// Login performs a password sign-in.
	Login(ctx context.Context, input *LoginInput) (*AuthTokensOutput, error)

	// RequestLoginLink emails a one-time sign-in link to an approved,
	// verified member.
	RequestLoginLink(ctx context.Context, input *LoginLinkInput) error

	// RequestAdminLoginLink emails a one-time sign-in link to an allow-listed
	// admin. Non-admin emails are rejected without revealing anything else;
	// the whole endpoint sits behind a shared per-IP rate limit.
	RequestAdminLoginLink(ctx context.Context, input *LoginLinkInput) error

	// CompleteLoginLink consumes a one-time token and issues a session.
	CompleteLoginLink(ctx context.Context, token string) (*AuthTokensOutput, error)

	// Refresh rotates a refresh token: revokes the presented session and
	// issues a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthTokensOutput, error)

	// Logout revokes the session holding the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
