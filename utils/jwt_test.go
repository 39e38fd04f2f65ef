package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("patient-1", "patient", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	sub, role, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken error: %v", err)
	}
	if sub != "patient-1" {
		t.Errorf("sub = %q, want patient-1", sub)
	}
	if role != "patient" {
		t.Errorf("role = %q, want patient", role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("patient-1", "patient", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	for _, in := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, _, err := ExtractIDFromToken(in); err == nil {
			t.Errorf("token %q: expected rejection", in)
		}
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	if a != b {
		t.Errorf("hash not deterministic: %q vs %q", a, b)
	}
	if a == HashToken("other-token") {
		t.Error("distinct tokens must not collide on the session hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
