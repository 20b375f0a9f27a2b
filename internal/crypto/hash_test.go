package crypto

import (
	"errors"
	"strings"
	"testing"
)

const testCost = 10

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple", testCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	// Modular Crypt Format: $2a$10$<22-char salt><31-char digest>
	parts := strings.Split(hash, "$")
	if len(parts) != 4 {
		t.Fatalf("HashPassword() expected 4 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "2a" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "2a")
	}
	if parts[2] != "10" {
		t.Errorf("HashPassword() cost = %q, want %q", parts[2], "10")
	}
	if len(parts[3]) != 53 {
		t.Errorf("HashPassword() salt+digest length = %d, want 53", len(parts[3]))
	}
}

func TestHashPasswordInvalidCost(t *testing.T) {
	for _, cost := range []int{0, 3, 32} {
		_, err := HashPassword("password", cost)
		if !errors.Is(err, ErrInvalidCost) {
			t.Errorf("cost %d: error = %v, want %v", cost, err, ErrInvalidCost)
		}
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password, testCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for correct password")
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPassword("correct-password", testCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	password := "same-password"

	hash1, err := HashPassword(password, testCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	hash2, err := HashPassword(password, testCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	_, err := VerifyPassword("password", "invalid-hash-format")
	if !errors.Is(err, ErrInvalidHashFormat) {
		t.Errorf("VerifyPassword() error = %v, want %v", err, ErrInvalidHashFormat)
	}
}

func TestHashCost(t *testing.T) {
	hash, err := HashPassword("password", 11)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	cost, err := HashCost(hash)
	if err != nil {
		t.Fatalf("HashCost() unexpected error: %v", err)
	}
	if cost != 11 {
		t.Errorf("HashCost() = %d, want 11", cost)
	}

	if _, err := HashCost("nope"); !errors.Is(err, ErrInvalidHashFormat) {
		t.Errorf("HashCost() error = %v, want %v", err, ErrInvalidHashFormat)
	}
}
