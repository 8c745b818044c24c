package auth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"muziris/internal/domain/service"
)

const tokenByteLength = 32

// randomTokenGenerator mints opaque tokens for email verification and
// one-time sign-in links.
type randomTokenGenerator struct{}

// NewTokenGenerator returns a TokenGenerator backed by crypto/rand.
func NewTokenGenerator() service.TokenGenerator {
	return &randomTokenGenerator{}
}

// NewToken returns a 64-character hex token from 32 random bytes.
func (g *randomTokenGenerator) NewToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
