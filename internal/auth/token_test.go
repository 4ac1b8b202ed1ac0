package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Issue(42, domain.RoleHospital)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.UserType != domain.RoleHospital {
		t.Fatalf("expected role hospital, got %q", claims.UserType)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.Issue(7, domain.RoleDonor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three segments, got %d", len(parts))
	}

	// Flip one character in the claims segment.
	claims := []byte(parts[1])
	if claims[0] == 'A' {
		claims[0] = 'B'
	} else {
		claims[0] = 'A'
	}
	tampered := parts[0] + "." + string(claims) + "." + parts[2]

	if _, err := tm.Verify(tampered); !errors.Is(err, ErrBadSignature) && !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected signature or malformed error, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, _, err := issuer.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// Negative lifetime produces an already-expired token.
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.Issue(5, domain.RoleDonor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := tm.Verify(token); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", token, err)
		}
	}
}
