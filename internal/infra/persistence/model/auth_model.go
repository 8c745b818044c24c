package model

import "time"

// CredentialModel mirrors a document in the 'credentials' collection, keyed
// by normalized email.
type CredentialModel struct {
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

// SessionModel mirrors a document in the 'sessions' collection.
type SessionModel struct {
	Email        string    `firestore:"email"`
	RefreshToken string    `firestore:"refreshToken"`
	ExpiresAt    time.Time `firestore:"expiresAt"`
	CreatedAt    time.Time `firestore:"createdAt"`
	RevokedAt    time.Time `firestore:"revokedAt,omitempty"`
}

// LoginTokenModel mirrors a document in the 'login_tokens' collection.
type LoginTokenModel struct {
	Email     string    `firestore:"email"`
	Token     string    `firestore:"token"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	CreatedAt time.Time `firestore:"createdAt"`
	UsedAt    time.Time `firestore:"usedAt,omitempty"`
}
