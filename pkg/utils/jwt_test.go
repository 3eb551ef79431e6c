package utils

import (
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("admin", "secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "admin" || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWTToken("admin", "secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	if _, err := ValidateToken(token, "other"); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestJWT_Expired(t *testing.T) {
	token, err := GenerateJWTToken("admin", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	if _, err := ValidateToken(token, "secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
