package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCost       = errors.New("invalid bcrypt cost factor")
	ErrInvalidHashFormat = errors.New("invalid encoded hash format")
)

// HashPassword hashes a password with bcrypt at the given cost factor.
// The result is in Modular Crypt Format ($2a$<cost>$<salt><digest>) and
// embeds a fresh random salt, so it is all VerifyPassword needs.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
// A mismatch is reported as (false, nil); a malformed hash as an error.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrInvalidHashFormat, err)
}

// HashCost extracts the cost factor encoded in a bcrypt hash.
func HashCost(encodedHash string) (int, error) {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHashFormat, err)
	}
	return cost, nil
}
