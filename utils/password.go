package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecurePassword creates a random password of the given length,
// never shorter than 12 characters
func GenerateSecurePassword(length int) (string, error) {
	if length < 12 {
		length = 12
	}

	// base64 yields four characters per three bytes
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}
