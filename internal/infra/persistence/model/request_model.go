// Package model holds the Firestore document shapes. Field tags define the
// stored attribute names; mapping to domain entities happens in the
// repository implementations.
package model

import "time"

// RequestModel mirrors a document in the 'requests' collection.
type RequestModel struct {
	MemberType string `firestore:"memberType"`
	Name       string `firestore:"name"`
	Email      string `firestore:"email"`

	Phone   string `firestore:"phone,omitempty"`
	Message string `firestore:"message,omitempty"`

	Company       string `firestore:"company,omitempty"`
	Role          string `firestore:"role,omitempty"`
	BusinessType  string `firestore:"businessType,omitempty"`
	MonthlyVolume string `firestore:"monthlyVolume,omitempty"`

	Status          string `firestore:"status"`
	RejectionReason string `firestore:"rejectionReason,omitempty"`

	EmailVerified     bool      `firestore:"emailVerified"`
	VerificationToken string    `firestore:"verificationToken,omitempty"`
	TokenExpiresAt    time.Time `firestore:"tokenExpiresAt,omitempty"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}
