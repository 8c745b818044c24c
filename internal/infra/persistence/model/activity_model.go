package model

import "time"

// ActivityModel mirrors a document in the 'trail' collection. Append-only.
type ActivityModel struct {
	UserID      string         `firestore:"userId"`
	UserEmail   string         `firestore:"userEmail"`
	Action      string         `firestore:"action"`
	Description string         `firestore:"description,omitempty"`
	Metadata    map[string]any `firestore:"metadata,omitempty"`
	CreatedAt   time.Time      `firestore:"createdAt"`
}
