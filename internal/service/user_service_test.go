package service

import (
	"context"
	"errors"
	"testing"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/pkg/token"
)

func newTestUserService() (UserService, *fakeUserRepo, *fakeTokenRepo, *token.JWTManager) {
	users := newFakeUserRepo()
	tokens := &fakeTokenRepo{}
	jwtManager := token.NewJWTManager("test-secret", 1, 7)
	return NewUserService(users, tokens, jwtManager), users, tokens, jwtManager
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, _, jwtManager := newTestUserService()

	user, err := svc.Register("  Amy@Example.com ", "secret123", " Amy Li ")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if user.Email != "amy@example.com" || user.FullName != "Amy Li" || user.Role != model.RoleUser {
		t.Errorf("Unexpected user: %+v", user)
	}
	if stored, _ := users.FindByID(user.ID); stored.Password == "secret123" {
		t.Error("Password should be stored hashed")
	}

	access, refresh, err := svc.Login("AMY@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	claims, err := jwtManager.VerifyAccessToken(access)
	if err != nil || claims.UserID != user.ID {
		t.Errorf("Access token does not identify the user: %v", err)
	}
	if refresh == "" {
		t.Error("Expected refresh token")
	}
}

func TestRegisterErrors(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.Register("amy@example.com", "secret123", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	testCases := []struct {
		email       string
		password    string
		want        error
		description string
	}{
		{"amy@example.com", "secret123", ErrEmailTaken, "Duplicate email"},
		{"AMY@example.com", "secret123", ErrEmailTaken, "Duplicate email with different case"},
		{"not-an-email", "secret123", ErrInvalidInput, "Malformed email"},
		{"bob@example.com", "123", ErrInvalidInput, "Short password"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if _, err := svc.Register(tc.email, tc.password, ""); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.Register("amy@example.com", "secret123", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if _, _, err := svc.Login("amy@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.Register("amy@example.com", "secret123", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	access, refresh, err := svc.Login("amy@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	if _, _, err := svc.RefreshToken(refresh); err != nil {
		t.Errorf("Expected refresh to succeed, got %v", err)
	}
	if _, _, err := svc.RefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Access token should not refresh, got %v", err)
	}
	if _, _, err := svc.RefreshToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, tokens, _ := newTestUserService()
	if _, err := svc.Register("amy@example.com", "secret123", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	access, _, err := svc.Login("amy@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	if user, _, err := svc.Authenticate(context.Background(), access); err != nil || user.Email != "amy@example.com" {
		t.Fatalf("Expected token to authenticate before logout, got %v", err)
	}
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("Failed to logout: %v", err)
	}
	ttl, ok := tokens.blacklisted[access]
	if !ok || ttl <= 0 {
		t.Errorf("Expected token blacklisted with positive ttl, got %v %v", ok, ttl)
	}
	if _, _, err := svc.Authenticate(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Blacklisted token should not authenticate, got %v", err)
	}
	if err := svc.Logout(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.GetByID(99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	if _, err := svc.Register("amy@example.com", "secret123", ""); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	_, refresh, err := svc.Login("amy@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if _, _, err := svc.Authenticate(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, users, tokens, _ := newTestUserService()
	user, err := svc.Register("amy@example.com", "secret123", "")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	access, _, err := svc.Login("amy@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	storeErr := errors.New("redis: connection refused")
	tokens.checkErr = storeErr
	_, _, err = svc.Authenticate(context.Background(), access)
	if !errors.Is(err, storeErr) || errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected store error to be passed through, got %v", err)
	}

	tokens.checkErr = nil
	delete(users.users, user.ID)
	if _, _, err := svc.Authenticate(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for deleted user, got %v", err)
	}
}
