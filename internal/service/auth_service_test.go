package service

import (
	"errors"
	"testing"

	"github.com/eduardo-dangelo/manager-pro-sub002/internal/auth"
	"github.com/eduardo-dangelo/manager-pro-sub002/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(testConfig(), repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	u, access, refresh, err := svc.Register("ana@example.com", "ana", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected persisted user")
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Fatal("password must not be stored in clear")
	}

	got, access2, _, err := svc.Login("ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned user %d, want %d", got.ID, u.ID)
	}
	if access2 == "" {
		t.Fatal("expected access token on login")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, _, _, err := svc.Register("dup@example.com", "first", "pass1234"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, _, err := svc.Register("dup@example.com", "second", "pass1234")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)

	if _, _, _, err := svc.Register("one@example.com", "taken", "pass1234"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, _, err := svc.Register("two@example.com", "taken", "pass1234")
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	if _, _, _, err := svc.Register("bob@example.com", "bob", "correct-pass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := svc.Login("bob@example.com", "wrong-pass")
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("wrong password: expected ErrInvalidCreds, got %v", err)
	}
	_, _, _, err = svc.Login("nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("unknown email: expected ErrInvalidCreds, got %v", err)
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc := newAuthService(t)
	cfg := testConfig()

	u, _, refresh, err := svc.Register("carol@example.com", "carol", "pass1234")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	access, err := svc.Refresh(refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := auth.ParseAccessToken(&cfg.JWT, access)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("refreshed token user %d, want %d", claims.UserID, u.ID)
	}

	if _, err := svc.Refresh("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	svc := newAuthService(t)

	u, _, _, err := svc.Register("dave@example.com", "dave", "pass1234")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	linked, access, _, err := svc.LoginWithGoogle("goog-123", "dave@example.com", "Dave", "https://img.example/d.png")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if linked.ID != u.ID {
		t.Fatalf("expected link to existing user %d, got %d", u.ID, linked.ID)
	}
	if linked.GoogleID == nil || *linked.GoogleID != "goog-123" {
		t.Fatal("google id not linked")
	}
	if access == "" {
		t.Fatal("expected access token")
	}

	// Subsequent logins resolve by google id.
	again, _, _, err := svc.LoginWithGoogle("goog-123", "dave@example.com", "Dave", "")
	if err != nil {
		t.Fatalf("repeat google login: %v", err)
	}
	if again.ID != u.ID {
		t.Fatalf("repeat login resolved user %d, want %d", again.ID, u.ID)
	}
}

func TestLoginWithGoogleCreatesNewUser(t *testing.T) {
	svc := newAuthService(t)

	u, _, _, err := svc.LoginWithGoogle("goog-999", "eve@example.com", "", "")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected persisted user")
	}
	if u.Username != "eve" {
		t.Fatalf("username derived from email, got %q", u.Username)
	}
}
