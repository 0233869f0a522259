// Package service provides domain services for Atelier.
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/pkg/secret"
)

func newTestAuth(t *testing.T, config *AuthServiceConfig) (*AuthService, *mockSessionRepo) {
	t.Helper()
	repo := newMockSessionRepo()
	sessions := NewSessionService(repo, nil)
	return NewAuthService(sessions, config), repo
}

// TestAuthService_Login tests password login.
func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password", func(t *testing.T) {
		svc, repo := newTestAuth(t, &AuthServiceConfig{
			Enabled:  true,
			Password: "sunflower",
		})

		resp, err := svc.Login(ctx, &LoginRequest{
			Password:  "sunflower",
			IPAddress: "10.0.0.5",
			UserAgent: "firefox",
		})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if !strings.HasPrefix(resp.Token, secret.TokenPrefix) {
			t.Errorf("Token = %q, want %q prefix", resp.Token, secret.TokenPrefix)
		}
		stored := repo.get(resp.SessionID)
		if stored == nil {
			t.Fatal("session was not persisted")
		}
		if stored.IPAddress != "10.0.0.5" || stored.UserAgent != "firefox" {
			t.Errorf("login fields = %q/%q, want 10.0.0.5/firefox",
				stored.IPAddress, stored.UserAgent)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

		_, err := svc.Login(ctx, &LoginRequest{Password: "tulip", IPAddress: "10.0.0.5"})
		if !domain.IsDomainError(err, "AT-AUTH-4010") {
			t.Errorf("error = %v, want AT-AUTH-4010", err)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

		_, err := svc.Login(ctx, &LoginRequest{IPAddress: "10.0.0.5"})
		if !domain.IsDomainError(err, "AT-SYS-4000") {
			t.Errorf("error = %v, want AT-SYS-4000", err)
		}
	})

	t.Run("auth disabled", func(t *testing.T) {
		svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: false})

		_, err := svc.Login(ctx, &LoginRequest{Password: "anything"})
		if !domain.IsDomainError(err, "AT-SYS-4000") {
			t.Errorf("error = %v, want AT-SYS-4000", err)
		}
	})

	t.Run("no password configured", func(t *testing.T) {
		svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true})

		_, err := svc.Login(ctx, &LoginRequest{Password: "anything", IPAddress: "10.0.0.5"})
		if !domain.IsDomainError(err, "AT-AUTH-4010") {
			t.Errorf("error = %v, want AT-AUTH-4010", err)
		}
	})
}

// TestAuthService_Login_HashedPrecedence tests that a hashed password wins
// over a plaintext one when both are configured.
func TestAuthService_Login_HashedPrecedence(t *testing.T) {
	ctx := context.Background()

	hashed, err := secret.HashPassword("tulip")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	svc, _ := newTestAuth(t, &AuthServiceConfig{
		Enabled:        true,
		Password:       "sunflower",
		HashedPassword: hashed,
	})

	if _, err := svc.Login(ctx, &LoginRequest{Password: "tulip", IPAddress: "10.0.0.5"}); err != nil {
		t.Errorf("hashed password login failed: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.5"}); !domain.IsDomainError(err, "AT-AUTH-4010") {
		t.Errorf("plaintext password error = %v, want AT-AUTH-4010", err)
	}
}

// TestAuthService_Login_RateLimit tests the failed-attempt budget.
func TestAuthService_Login_RateLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

	// The hour bucket holds 12 tokens and every failure drains it, so the
	// 13th attempt from the same address is limited.
	for i := 0; i < 12; i++ {
		_, err := svc.Login(ctx, &LoginRequest{Password: "wrong", IPAddress: "10.0.0.5"})
		if !domain.IsDomainError(err, "AT-AUTH-4010") {
			t.Fatalf("attempt %d: error = %v, want AT-AUTH-4010", i+1, err)
		}
	}

	_, err := svc.Login(ctx, &LoginRequest{Password: "wrong", IPAddress: "10.0.0.5"})
	if !domain.IsDomainError(err, "AT-AUTH-4290") {
		t.Errorf("error = %v, want AT-AUTH-4290", err)
	}

	// Even the correct password is refused while limited
	_, err = svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.5"})
	if !domain.IsDomainError(err, "AT-AUTH-4290") {
		t.Errorf("error = %v, want AT-AUTH-4290", err)
	}

	// Another address is unaffected
	if _, err := svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.6"}); err != nil {
		t.Errorf("other address login failed: %v", err)
	}
}

// TestAuthService_Login_SuccessDoesNotConsume tests that successful logins
// never count against the limiter.
func TestAuthService_Login_SuccessDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

	for i := 0; i < 20; i++ {
		if _, err := svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.5"}); err != nil {
			t.Fatalf("login %d failed: %v", i+1, err)
		}
	}
}

// TestAuthService_ValidateToken tests token-to-session resolution.
func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

	login, err := svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.5"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		session, err := svc.ValidateToken(ctx, &ValidateTokenRequest{
			Token:     login.Token,
			IPAddress: "10.0.0.7",
			UserAgent: "safari",
		})
		if err != nil {
			t.Fatalf("ValidateToken failed: %v", err)
		}
		if session.ID != login.SessionID {
			t.Errorf("session ID = %s, want %s", session.ID, login.SessionID)
		}

		stored := repo.get(login.SessionID)
		if stored.LastAccessIP != "10.0.0.7" || stored.LastAccessUA != "safari" {
			t.Errorf("last access = %q/%q, want 10.0.0.7/safari",
				stored.LastAccessIP, stored.LastAccessUA)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, &ValidateTokenRequest{Token: "atsk_bogus"})
		if !domain.IsDomainError(err, "AT-AUTH-4011") {
			t.Errorf("error = %v, want AT-AUTH-4011", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, &ValidateTokenRequest{})
		if !domain.IsDomainError(err, "AT-AUTH-4011") {
			t.Errorf("error = %v, want AT-AUTH-4011", err)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		repo.get(login.SessionID).ExpiresAt = time.Now().Add(-time.Minute).UnixMilli()
		_, err := svc.ValidateToken(ctx, &ValidateTokenRequest{Token: login.Token})
		if !domain.IsDomainError(err, "AT-AUTH-4011") {
			t.Errorf("error = %v, want AT-AUTH-4011", err)
		}
	})
}

// TestAuthService_Logout tests session revocation by token.
func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "sunflower"})

	login, err := svc.Login(ctx, &LoginRequest{Password: "sunflower", IPAddress: "10.0.0.5"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, login.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if repo.count() != 0 {
		t.Error("session still present after logout")
	}

	// Logging out again, or with junk, is fine
	if err := svc.Logout(ctx, login.Token); err != nil {
		t.Errorf("repeat logout error = %v, want nil", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Errorf("empty token logout error = %v, want nil", err)
	}
}

// TestLoginRateLimiter tests the limiter registry directly.
func TestLoginRateLimiter(t *testing.T) {
	r := NewLoginRateLimiter()

	if !r.CanTry("10.0.0.1") {
		t.Fatal("fresh address should be allowed")
	}

	for i := 0; i < 12; i++ {
		r.RemoveToken("10.0.0.1")
	}
	if r.CanTry("10.0.0.1") {
		t.Error("address should be limited after 12 failures")
	}
	if !r.CanTry("10.0.0.2") {
		t.Error("other address should be unaffected")
	}

	// Delete forgets the failure history
	r.Delete("10.0.0.1")
	if !r.CanTry("10.0.0.1") {
		t.Error("address should be allowed after Delete")
	}

	for i := 0; i < 12; i++ {
		r.RemoveToken("10.0.0.1")
	}
	r.Clear()
	if !r.CanTry("10.0.0.1") {
		t.Error("address should be allowed after Clear")
	}
}

// TestAuthService_RequiresAuth tests the auth-mode accessor.
func TestAuthService_RequiresAuth(t *testing.T) {
	on, _ := newTestAuth(t, &AuthServiceConfig{Enabled: true, Password: "x"})
	off, _ := newTestAuth(t, &AuthServiceConfig{Enabled: false})

	if !on.RequiresAuth() {
		t.Error("RequiresAuth = false, want true")
	}
	if off.RequiresAuth() {
		t.Error("RequiresAuth = true, want false")
	}
}
