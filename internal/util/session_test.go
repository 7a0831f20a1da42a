package util

import (
	"strings"
	"testing"
	"time"
)

func TestSessionManager(t *testing.T) {
	manager := NewSessionManager("test-secret", time.Hour)

	t.Run("issue and verify", func(t *testing.T) {
		token, expiresAt, err := manager.Issue()
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if time.Until(expiresAt) <= 0 {
			t.Fatalf("expected future expiry, got %v", expiresAt)
		}
		claims, err := manager.Verify(token)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if claims.Subject != "admin" || claims.ID == "" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("tokens carry unique ids", func(t *testing.T) {
		a, _, _ := manager.Issue()
		b, _, _ := manager.Issue()
		claimsA, _ := manager.Verify(a)
		claimsB, _ := manager.Verify(b)
		if claimsA.ID == claimsB.ID {
			t.Fatal("expected distinct token ids")
		}
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		token, _, _ := manager.Issue()
		parts := strings.Split(token, ".")
		tampered := parts[0] + "." + parts[1] + ".AAAA"
		if _, err := manager.Verify(tampered); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, _, _ := manager.Issue()
		other := NewSessionManager("other-secret", time.Hour)
		if _, err := other.Verify(token); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		shortLived := NewSessionManager("test-secret", -time.Minute)
		token, _, err := shortLived.Issue()
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := manager.Verify(token); err == nil {
			t.Fatal("expected expired token to fail")
		}
	})
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, salt, err := DerivePassword("s3cret-chergui")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	if !VerifyPassword("s3cret-chergui", salt, hash) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword("wrong", salt, hash) {
		t.Fatal("expected wrong password to fail")
	}
	if VerifyPassword("", salt, hash) {
		t.Fatal("expected empty password to fail")
	}
}
