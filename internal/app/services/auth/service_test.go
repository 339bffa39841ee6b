package auth

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"

	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
)

func newTestService() *Service {
	return New(memory.New(), []byte("test-secret"), "nemesis-test", nil)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || token == "" {
		t.Fatalf("expected id and token, got %q / %q", u.ID, token)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plain text")
	}

	logged, loginToken, err := svc.Login(ctx, "Alice@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != u.ID || loginToken == "" {
		t.Fatalf("login returned wrong user or empty token")
	}

	claims, err := svc.ValidateToken(loginToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("expected claims for %s, got %s", u.ID, claims.UserID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Register(ctx, "Other", "alice@example.com", "hunter23")
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@example.com", "hunter22"},
		{"A", "", "hunter22"},
		{"A", "not-an-email", "hunter22"},
		{"A", "a@example.com", "short"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(ctx, tc.name, tc.email, tc.password); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); err == nil {
		t.Fatal("expected error for unknown email")
	}
}

func TestTokenExpires(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return issued })

	_, token, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.WithClock(func() time.Time { return issued.Add(DefaultTokenTTL - time.Minute) })
	if _, err := svc.ValidateToken(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	svc.WithClock(func() time.Time { return issued.Add(DefaultTokenTTL + time.Minute) })
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "wrong", "newpassword"); err == nil {
		t.Fatal("expected error for wrong current password")
	}
	if err := svc.ChangePassword(ctx, u.ID, "hunter22", "newpassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
