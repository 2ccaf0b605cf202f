package random

import (
	"crypto/rand"
	"math/big"
)

// SessionAlphabet avoids characters that are easy to misread
const SessionAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Random is the source of every random choice the engine makes
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String returns a random string of the given length drawn from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a uniformly distributed int in [0, n), or 0 if n <= 0
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// String returns a random string of the given length drawn from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
