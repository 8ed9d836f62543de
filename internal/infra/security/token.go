package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomTokenGenerator produces opaque URL-safe session tokens.
type RandomTokenGenerator struct {
	bytes int
}

func NewRandomTokenGenerator(bytes int) *RandomTokenGenerator {
	if bytes <= 0 {
		bytes = 32
	}
	return &RandomTokenGenerator{bytes: bytes}
}

func (g *RandomTokenGenerator) NewToken() (string, error) {
	buf := make([]byte, g.bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
