package util

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordWithCost("catalyst-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPasswordWithCost() error = %v", err)
	}
	if hash == "catalyst-secret" {
		t.Fatal("hash equals the plaintext")
	}
	if !CheckPassword("catalyst-secret", hash) {
		t.Error("CheckPassword rejected the original password")
	}
	if CheckPassword("wrong-secret", hash) {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("catalyst-secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost() error = %v", err)
	}
	if cost != DefaultPasswordCost {
		t.Errorf("cost = %d, want %d", cost, DefaultPasswordCost)
	}

	t.Run("out-of-range cost is clamped", func(t *testing.T) {
		hash, err := HashPasswordWithCost("catalyst-secret", 0)
		if err != nil {
			t.Fatalf("HashPasswordWithCost(0) error = %v", err)
		}
		cost, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("Cost() error = %v", err)
		}
		if cost != bcrypt.MinCost {
			t.Errorf("cost = %d, want %d", cost, bcrypt.MinCost)
		}
	})
}
