package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/leave-service/internal/domain"
)

const testSecret = "test-secret"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("expected subject user-1, got %s", claims.UserID())
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", claims.Role)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	// Sign a token whose expiry already passed, with the manager's secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: domain.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	_, err = tm.ParseToken(tokenStr)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if got := FailureReason(err); got != "expired" {
		t.Fatalf("expected reason expired, got %s", got)
	}
}

func TestTokenManager_BadSignature(t *testing.T) {
	other := NewTokenManager("different-secret", 60)
	token, _, err := other.GenerateToken("user-1", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tm := NewTokenManager(testSecret, 60)
	_, err = tm.ParseToken(token)
	if err == nil {
		t.Fatal("expected error for foreign signature")
	}
	if got := FailureReason(err); got != "bad-signature" {
		t.Fatalf("expected reason bad-signature, got %s", got)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	_, err := tm.ParseToken("not-a-token")
	if err == nil {
		t.Fatal("expected error for malformed token")
	}
	if got := FailureReason(err); got != "malformed" {
		t.Fatalf("expected reason malformed, got %s", got)
	}
}
