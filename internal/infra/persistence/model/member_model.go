package model

import "time"

// MemberModel mirrors a document in the 'members' collection, keyed by
// normalized email.
type MemberModel struct {
	Email       string    `firestore:"email"`
	Name        string    `firestore:"name"`
	Company     string    `firestore:"company,omitempty"`
	Role        string    `firestore:"role,omitempty"`
	ApprovedAt  time.Time `firestore:"approvedAt"`
	CreatedAt   time.Time `firestore:"createdAt"`
	LastLoginAt time.Time `firestore:"lastLoginAt"`
}

// ProfileModel mirrors a document in the 'profiles' collection, keyed by
// user ID. LoyaltyPoints here is the authoritative balance.
type ProfileModel struct {
	UserID         string    `firestore:"userId"`
	Email          string    `firestore:"email"`
	DisplayName    string    `firestore:"displayName,omitempty"`
	LoyaltyPoints  int       `firestore:"loyaltyPoints"`
	HasSetPassword bool      `firestore:"hasSetPassword"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// UserModel mirrors a document in the 'users' collection. It is a derived
// projection of the profile's loyalty balance for dashboard reads.
type UserModel struct {
	Email         string    `firestore:"email"`
	LoyaltyPoints int       `firestore:"loyaltyPoints"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}
