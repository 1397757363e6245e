package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// TokenLength is the number of random bytes per token (32 hex characters)
const TokenLength = 16

var tokenFormat = regexp.MustCompile(`^\w+$`)

// TokenGenerator generates and validates opaque API tokens
type TokenGenerator struct{}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// GenerateToken creates a new opaque token. Hex keeps the token inside the
// \w+ alphabet the bearer header parser accepts.
func (tg *TokenGenerator) GenerateToken() (string, error) {
	randomBytes := make([]byte, TokenLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}

// ValidateTokenFormat checks if a token could ever match a stored credential
func (tg *TokenGenerator) ValidateTokenFormat(token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	if !tokenFormat.MatchString(token) {
		return fmt.Errorf("token contains characters outside the \\w alphabet")
	}
	return nil
}
