package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString generates a random hex string of the given length.
func GenerateRandomString(length int) string {
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)[:length]
}
