package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codePrefix   = "CONF-"
	codeLength   = 8
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var alphabetSize = big.NewInt(int64(len(codeAlphabet)))

// generateCode returns CONF- followed by 8 uniformly random characters from
// [A-Z0-9]. Uniqueness is enforced by the store, not here.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return codePrefix + string(buf), nil
}
