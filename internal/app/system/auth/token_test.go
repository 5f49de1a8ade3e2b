package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	u := &SessionUser{ID: "64f000000000000000000001", Name: "Ada", Email: "ada@example.com"}
	raw, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.ID != u.ID || got.Name != u.Name || got.Email != u.Email {
		t.Errorf("identity mismatch: got %+v", got)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a-0123456789", time.Hour)
	b, _ := NewTokenIssuer("secret-b-0123456789", time.Hour)

	raw, err := a.Issue(&SessionUser{ID: "64f000000000000000000001"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := b.Parse(raw); err == nil {
		t.Error("token signed with a different secret should fail Parse")
	}
}

func TestTokenExpired(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret-0123456789", time.Hour)
	// NewTokenIssuer clamps non-positive ttls, so build the expired issuer
	// directly.
	short := &TokenIssuer{secret: []byte("test-secret-0123456789"), ttl: -time.Minute}
	raw, err := short.Issue(&SessionUser{ID: "64f000000000000000000001"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := issuer.Parse(raw); err == nil {
		t.Error("expired token should fail Parse")
	}
}

func TestTokenGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret-0123456789", time.Hour)
	if _, err := issuer.Parse("not-a-token"); err == nil {
		t.Error("garbage input should fail Parse")
	}
}
