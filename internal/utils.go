package internal

import (
	"crypto/rand"
	"io"
)

// SecureZero securely zeroes out the given byte slice
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// RandomBytes generates cryptographically secure random bytes
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ValidateKeySize validates that a key has the expected size
func ValidateKeySize(key []byte, expectedSize int) bool {
	return len(key) == expectedSize
}

// IsHex reports whether s consists only of hexadecimal digits.
// Both cases are accepted; the empty string is not hexadecimal.
func IsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}
