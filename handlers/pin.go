package handlers

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPin returns the hex SHA-256 of a PIN. The server only ever stores and
// compares hashes; the plain PIN exists client-side for the session.
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}
