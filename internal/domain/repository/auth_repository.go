package repository

import (
	"context"
	"errors"
	"time"

	"muziris/internal/domain/entity"
)

// ErrCredentialNotFound is returned when no password credential exists for
// an email. The login flow uses this to distinguish first-time setup from a
// returning sign-in.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrSessionNotFound is returned when a refresh token matches no session.
var ErrSessionNotFound = errors.New("session not found")

// ErrLoginTokenNotFound is returned when a sign-in token matches nothing.
var ErrLoginTokenNotFound = errors.New("login token not found")

// CredentialRepository persists password credentials keyed by normalized
// email.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
	Create(ctx context.Context, cred *entity.Credential) error
	Update(ctx context.Context, cred *entity.Credential) error
}

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByRefreshToken(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// LoginTokenRepository persists one-time magic-link sign-in tokens.
type LoginTokenRepository interface {
	Create(ctx context.Context, token *entity.LoginToken) error
	FindByToken(ctx context.Context, token string) (*entity.LoginToken, error)
	MarkUsed(ctx context.Context, id string, at time.Time) error
}
