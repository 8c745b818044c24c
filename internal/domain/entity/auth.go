package entity

import "time"

// Credential is a password credential attached to a member identity,
// keyed by normalized email.
type Credential struct {
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a persisted refresh-token session. One member may hold several
// concurrent sessions (one per device/browser).
type Session struct {
	ID           string
	Email        string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	RevokedAt    time.Time
}

// Active reports whether the session can still be used to refresh.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt.IsZero() && now.Before(s.ExpiresAt)
}

// LoginToken is a one-time emailed sign-in token (magic link). Consumed
// exactly once and bounded by an expiry.
type LoginToken struct {
	ID        string
	Email     string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UsedAt    time.Time
}

// Usable reports whether the token can still complete a sign-in.
func (t *LoginToken) Usable(now time.Time) bool {
	return t.UsedAt.IsZero() && now.Before(t.ExpiresAt)
}
