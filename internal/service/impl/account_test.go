package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
)

func TestRegisterRejectsBadInput(t *testing.T) {
	s := newService(t)

	cases := []struct {
		label    string
		name     string
		username string
		email    string
		password string
	}{
		{"short password", "Some Name", "shortpw", "shortpw@example.com", "short"},
		{"bad email", "Some Name", "bademail", "not-an-email", "password123"},
		{"short username", "Some Name", "ab", "ab@example.com", "password123"},
		{"blank name", "  ", "blankname", "blankname@example.com", "password123"},
	}

	for _, c := range cases {
		_, err := s.Register(ctx, c.name, c.username, c.email, c.password)
		if !errors.Is(err, service.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", c.label, err)
		}
	}
}

func TestRegisterRejectsReservedUsername(t *testing.T) {
	s := newService(t)

	_, err := s.Register(ctx, "Admin Wannabe", "Admin", "wannabe@example.com", "password123")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for reserved username, got %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	s := newService(t)
	register(t, s, "taken")

	_, err := s.Register(ctx, "Copycat", "taken", "copycat@example.com", "password123")
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}

	_, err = s.Register(ctx, "Copycat", "copycat", "taken@example.com", "password123")
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	s := newService(t)
	register(t, s, "authuser")

	// By username and by email, case-insensitively.
	for _, login := range []string{"authuser", "AuthUser", "authuser@example.com"} {
		a, ok, err := s.AuthenticateUser(ctx, login, "password123")
		if err != nil {
			t.Fatalf("unexpected error for %q: %s", login, err)
		}
		if !ok || a.Username != "authuser" {
			t.Errorf("expected successful login for %q, got ok=%v account=%+v", login, ok, a)
		}
	}

	if _, ok, err := s.AuthenticateUser(ctx, "authuser", "wrongpassword"); err != nil || ok {
		t.Errorf("expected failed login on wrong password, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.AuthenticateUser(ctx, "nobody", "password123"); err != nil || ok {
		t.Errorf("expected failed login for unknown user, got ok=%v err=%v", ok, err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	s := newService(t)
	register(t, s, "resetflow")

	url, err := s.RequestPasswordReset(ctx, "resetflow@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	token := strings.TrimPrefix(url, "/auth/reset-password/")
	if token == url || len(token) != 64 {
		t.Fatalf("unexpected reset url %q", url)
	}

	if err = s.ResetPassword(ctx, token, "freshpassword"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, ok, _ := s.AuthenticateUser(ctx, "resetflow", "password123"); ok {
		t.Error("expected old password rejected after reset")
	}
	if _, ok, _ := s.AuthenticateUser(ctx, "resetflow", "freshpassword"); !ok {
		t.Error("expected new password accepted after reset")
	}

	// The token is single use.
	err = s.ResetPassword(ctx, token, "anotherpassword")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput reusing token, got %v", err)
	}
}

// Unknown addresses behave like known ones so the endpoint does not leak which
// emails exist.
func TestPasswordResetUnknownEmail(t *testing.T) {
	s := newService(t)

	url, err := s.RequestPasswordReset(ctx, "whoisthis@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if url != "" {
		t.Errorf("expected no reset url for unknown email, got %q", url)
	}
}

func TestResetPasswordBadToken(t *testing.T) {
	s := newService(t)

	err := s.ResetPassword(ctx, "deadbeef", "freshpassword")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bogus token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	s := newService(t)
	id := register(t, s, "changepw")

	err := s.ChangePassword(ctx, id, "wrongcurrent", "updatedpassword")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput on wrong current password, got %v", err)
	}

	if err = s.ChangePassword(ctx, id, "password123", "updatedpassword"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, ok, _ := s.AuthenticateUser(ctx, "changepw", "updatedpassword"); !ok {
		t.Error("expected updated password accepted")
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newService(t)
	id := register(t, s, "profileuser")
	register(t, s, "profiletaken")

	bio := "writes tests"
	u, err := s.UpdateProfile(ctx, id, domain.ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if u.Bio != bio {
		t.Errorf("expected bio %q, got %q", bio, u.Bio)
	}

	taken := "profiletaken"
	if _, err = s.UpdateProfile(ctx, id, domain.ProfileUpdate{Username: &taken}); !errors.Is(err, service.ErrConflict) {
		t.Errorf("expected ErrConflict for taken username, got %v", err)
	}

	reserved := "admin"
	if _, err = s.UpdateProfile(ctx, id, domain.ProfileUpdate{Username: &reserved}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for reserved username, got %v", err)
	}

	if _, err = s.UpdateProfile(ctx, id, domain.ProfileUpdate{}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty update, got %v", err)
	}
}
