package identity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/taskflow/sdk/identity"
)

const testSecret = "unit-test-secret"

func TestSignParseRoundtrip(t *testing.T) {
	want := identity.Identity{
		ID:    "user-1",
		Email: "user1@example.com",
		Name:  "User One",
	}

	token, err := identity.Sign(want, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := identity.Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != want {
		t.Errorf("identity mismatch: got %+v want %+v", got, want)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := identity.Sign(identity.Identity{ID: "user-1"}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := identity.Parse(token, testSecret); !errors.Is(err, identity.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := identity.Sign(identity.Identity{ID: "user-1"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := identity.Parse(token, "other-secret"); !errors.Is(err, identity.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := identity.Parse(tok, testSecret); !errors.Is(err, identity.ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestParseMissingSubject(t *testing.T) {
	token, err := identity.Sign(identity.Identity{Email: "nosub@example.com"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := identity.Parse(token, testSecret); !errors.Is(err, identity.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
