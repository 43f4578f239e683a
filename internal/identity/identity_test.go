package identity

import (
	"testing"
	"time"

	"github.com/inkpost/inkpost-go/internal/crypto"
)

const testSecret = "test-secret"

func TestResolveMissingHeader(t *testing.T) {
	ctx := Resolve("", testSecret)
	if ctx.Authenticated {
		t.Error("missing header should resolve to unauthenticated")
	}
	if ctx.UserID != "" {
		t.Errorf("unauthenticated context should carry no user id, got %q", ctx.UserID)
	}
}

func TestResolveMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Bearer ", "Basic abc123", "token-without-scheme"} {
		if ctx := Resolve(header, testSecret); ctx.Authenticated {
			t.Errorf("header %q should resolve to unauthenticated", header)
		}
	}
}

func TestResolveInvalidToken(t *testing.T) {
	ctx := Resolve("Bearer not-a-real-token", testSecret)
	if ctx.Authenticated {
		t.Error("garbage token should resolve to unauthenticated")
	}
}

func TestResolveValidToken(t *testing.T) {
	token, err := crypto.GenerateToken("65f0c2a1d4e8b900175c3a11", "test@test.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	ctx := Resolve("Bearer "+token, testSecret)
	if !ctx.Authenticated {
		t.Fatal("valid token should resolve to authenticated")
	}
	if ctx.UserID != "65f0c2a1d4e8b900175c3a11" {
		t.Errorf("UserID = %q, want issued id", ctx.UserID)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	token, err := crypto.GenerateToken("u1", "a@b.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if ctx := Resolve("Bearer "+token, testSecret); ctx.Authenticated {
		t.Error("expired token should resolve to unauthenticated")
	}
}

func TestResolveWrongSecret(t *testing.T) {
	token, err := crypto.GenerateToken("u1", "a@b.com", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if ctx := Resolve("Bearer "+token, testSecret); ctx.Authenticated {
		t.Error("mis-signed token should resolve to unauthenticated")
	}
}
