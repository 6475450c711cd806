package auth

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// GenerateToken returns a 32-byte cryptographically random token encoded as
// hex. Used for session tokens and email verification tokens.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const loginIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCompanyLoginID returns a short human-typable company login id of
// the form COMP-XXXXXX. Uniqueness is the caller's problem (retry on
// collision).
func GenerateCompanyLoginID() (string, error) {
	out := []byte("COMP-")
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(loginIDAlphabet))))
		if err != nil {
			return "", err
		}
		out = append(out, loginIDAlphabet[n.Int64()])
	}
	return string(out), nil
}
