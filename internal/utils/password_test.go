package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pass123!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pass123!" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hash, "pass123!") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong123!") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	a := HashRefreshRaw("token-a")
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(a))
	}
	if a != HashRefreshRaw("token-a") {
		t.Fatal("hash is not deterministic")
	}
	if a == HashRefreshRaw("token-b") {
		t.Fatal("distinct tokens collided")
	}
}
