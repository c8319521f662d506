package auth

import "testing"

// Cost 4 keeps bcrypt fast in tests.
const testBcryptCost = 4

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", testBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("expected password to be hashed")
	}
	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
}

func TestComparePassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", testBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("s3cret", testBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("s3cret", testBcryptCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same input")
	}
}
