// Package service defines the domain-level service contracts implemented by
// the infrastructure layer.
package service

// PasswordHasher abstracts password hashing so the application layer never
// touches a concrete algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether a plaintext password matches a stored hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength enforces the configured password policy
	// (minimum length, character classes) before a credential is created.
	ValidatePasswordStrength(password string) error
}
