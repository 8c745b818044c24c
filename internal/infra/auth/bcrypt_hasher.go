// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"muziris/config"
	"muziris/internal/domain/service"

	"github.com/pkg/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// The bcrypt cost and password policy come from configuration.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:   cost,
		policy: cfg.PasswordStrength,
	}
}

// Hash validates the password against the configured policy and generates a
// salted bcrypt hash. bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), errors.WithStack(err)
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePasswordStrength enforces the configured policy. The returned error
// message is safe to show to the end user.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	policy := h.policy
	if policy == nil {
		policy = &config.PasswordStrengthConfig{MinLength: 8}
	}

	if len(password) < policy.MinLength {
		return errors.Errorf("password must be at least %d characters long", policy.MinLength)
	}
	if policy.MaxLength > 0 && len(password) > policy.MaxLength {
		return errors.Errorf("password must be at most %d characters long", policy.MaxLength)
	}
	if policy.RequireUppercase && !hasClass(password, unicode.IsUpper) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if policy.RequireLowercase && !hasClass(password, unicode.IsLower) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if policy.RequireNumbers && !hasClass(password, unicode.IsDigit) {
		return errors.New("password must contain at least one number")
	}

	return nil
}

func hasClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}

	return false
}
