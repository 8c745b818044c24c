package service

// AdminDirectory is the single authorization gate for admin-only operations.
// Every admin entry point consults this instead of re-reading the allow-list.
type AdminDirectory interface {
	IsAdmin(email string) bool
}
