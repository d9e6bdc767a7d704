package service

import (
	"testing"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/util"
)

func newTestTokenService() *TokenService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-that-is-long-enough-0123"
	cfg.JWT.ExpireTime = 30 * 24 * time.Hour
	return NewTokenService(cfg)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueSessionToken(42)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	userID, err := svc.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("got user id %d, want 42", userID)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	svc := newTestTokenService()

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.IssueSessionToken(7)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(31 * 24 * time.Hour) }
	if _, err := svc.VerifySessionToken(token); err != util.ErrTokenInvalid {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService()
	token, err := svc.IssueSessionToken(7)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	other := newTestTokenService()
	other.secret = []byte("a-completely-different-secret-value")
	if _, err := other.VerifySessionToken(token); err != util.ErrTokenInvalid {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	svc := newTestTokenService()
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.VerifySessionToken(raw); err != util.ErrTokenInvalid {
			t.Errorf("VerifySessionToken(%q) = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestGenerateOpaqueToken(t *testing.T) {
	a, err := GenerateOpaqueToken()
	if err != nil {
		t.Fatalf("GenerateOpaqueToken: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}

	b, err := GenerateOpaqueToken()
	if err != nil {
		t.Fatalf("GenerateOpaqueToken: %v", err)
	}
	if a == b {
		t.Error("two generated tokens are identical")
	}
}
