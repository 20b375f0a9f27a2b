package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

var ErrRandomSource = errors.New("random source failure")

// RandomSource draws uniformly distributed integers in [0, n).
// Implementations must be safe for concurrent use when shared across goroutines.
type RandomSource interface {
	IntN(n int) (int, error)
}

// SecureSource draws from crypto/rand. rand.Int rejects out-of-range samples,
// so the result carries no modulo bias.
type SecureSource struct{}

// IntN returns a uniform integer in [0, n).
func (SecureSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: invalid bound %d", ErrRandomSource, n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return int(v.Int64()), nil
}
