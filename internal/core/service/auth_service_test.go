package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/security"
)

func seedIdentity(t *testing.T, store *memStore, email, password, role string) *domain.Identity {
	t.Helper()
	hash, _ := security.SHA256Hasher{}.Hash(password)
	created, err := store.Save(context.Background(), &domain.Identity{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	return created
}

func TestAuthService_Login_Success(t *testing.T) {
	store := catalogStore()
	seedIdentity(t, store, "carol@example.com", "s3cret", domain.RoleAdmin)
	svc := newTestAuth(store)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	role, err := svc.RoleFromToken(token)
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %q (%v)", domain.RoleAdmin, role, err)
	}
	sub, err := svc.SubjectFromToken(token)
	if err != nil || sub != "carol@example.com" {
		t.Fatalf("expected subject carol@example.com, got %q (%v)", sub, err)
	}
}

func TestAuthService_Login_NoAccountEnumeration(t *testing.T) {
	store := catalogStore()
	seedIdentity(t, store, "dave@example.com", "goodpass", domain.RoleTourist)
	svc := newTestAuth(store)

	_, _, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "pass")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", unknown)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuth(catalogStore())
	if _, _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmailMatchingIsExact(t *testing.T) {
	store := catalogStore()
	seedIdentity(t, store, "ana@x.com", "pw", domain.RoleTourist)
	svc := newTestAuth(store)

	if _, _, err := svc.Login(context.Background(), "  ana@x.com ", "pw"); err != nil {
		t.Fatalf("surrounding whitespace should be trimmed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "Ana@x.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected case-sensitive match, got %v", err)
	}
}

func TestAuthService_Login_ProviderClaim(t *testing.T) {
	store := catalogStore()
	user := seedIdentity(t, store, "p@x.com", "pw", domain.RoleProvider)
	if _, err := store.SaveProvider(context.Background(), &domain.ProviderProfile{IdentityID: user.ID, CompanyName: "C"}); err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	svc := newTestAuth(store)

	token, _, err := svc.Login(context.Background(), "p@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := svc.tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ProviderID != user.ID+200 {
		t.Fatalf("expected provider id %d, got %d", user.ID+200, claims.ProviderID)
	}
}

func TestAuthService_TokenAccessors_InvalidToken(t *testing.T) {
	svc := newTestAuth(catalogStore())
	for _, tok := range []string{"", "a.b", "a.b.c.d"} {
		if _, err := svc.RoleFromToken(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("RoleFromToken(%q): expected ErrInvalidToken, got %v", tok, err)
		}
		if _, err := svc.SubjectFromToken(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("SubjectFromToken(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	store := catalogStore()
	user := seedIdentity(t, store, "t@x.com", "pw", domain.RoleTourist)
	_, _ = store.SaveTourist(context.Background(), &domain.TouristProfile{IdentityID: user.ID, City: "San José"})
	svc := newTestAuth(store)

	token, _, err := svc.Login(context.Background(), "t@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	details, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if details.Identity.ID != user.ID || details.Tourist == nil || details.Tourist.City != "San José" {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.Provider != nil {
		t.Fatalf("tourist must not carry a provider profile")
	}

	if _, err := svc.CurrentUser(context.Background(), "bogus"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
