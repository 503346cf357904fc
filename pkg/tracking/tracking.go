package tracking

import (
	"crypto/rand"
	"fmt"
)

// CodeLength is the fixed length of generated tracking codes.
const CodeLength = 10

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode returns a random tracking code drawn from [A-Z0-9].
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
