package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	finds int
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(id, email, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.users[email] = &domain.User{ID: id, Email: email, PasswordHash: string(hash)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.finds++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return &clone, nil
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("64f000000000000000000001", "test@example.com", "password123")
	svc := NewAuthService(repo, "secret", 24*time.Hour)

	token, user, err := svc.Login(context.Background(), "test@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "test@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != "64f000000000000000000001" {
		t.Fatalf("expected subject id in claims, got %v", claims["user_id"])
	}
	if claims["email"] != "test@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	in24h := time.Now().Add(24 * time.Hour)
	if exp.Time.Before(in24h.Add(-time.Minute)) || exp.Time.After(in24h.Add(time.Minute)) {
		t.Fatalf("expected expiry ~24h from now, got %v", exp.Time)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	for _, tc := range []struct{ email, password string }{
		{"", "password123"},
		{"test@example.com", ""},
		{"", ""},
	} {
		if _, _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrMissingCredentials, got %v", tc.email, tc.password, err)
		}
	}
	if repo.finds != 0 {
		t.Fatalf("expected no storage lookup for missing credentials, got %d", repo.finds)
	}
}

// Unknown email and wrong password must be indistinguishable: same error
// value, same message.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("64f000000000000000000001", "test@example.com", "password123")
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, wrongPass := svc.Login(context.Background(), "test@example.com", "nope")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "anything")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestAuthService_Login_TokenRejectsOtherSecret(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("64f000000000000000000001", "test@example.com", "password123")
	svc := NewAuthService(repo, "secret", time.Hour)

	token, _, err := svc.Login(context.Background(), "test@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatalf("token verified with the wrong secret")
	}
}

func TestAuthService_Login_InfraErrorPassesThrough(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("connection reset")
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "test@example.com", "password123")
	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("infra failure must not look like an auth failure, got %v", err)
	}
	if err == nil || err.Error() != "connection reset" {
		t.Fatalf("expected repository error to pass through, got %v", err)
	}
}
