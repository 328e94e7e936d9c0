package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("k")

	tok, err := GenerateToken("u1", "s1abc", "student", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "u1" || claims.RegNo != "s1abc" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("u1", "s1abc", "student", []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("wrong")); err == nil {
		t.Fatalf("expected verification failure")
	}
}

func TestParse_Expired(t *testing.T) {
	tok, err := GenerateToken("u1", "s1abc", "student", []byte("k"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("k")); err == nil {
		t.Fatalf("expected expiry failure")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt", []byte("k")); err == nil {
		t.Fatalf("expected parse failure")
	}
}
