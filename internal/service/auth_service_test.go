package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/leave-service/internal/config"
	"github.com/spec-kit/leave-service/internal/domain"
	"github.com/spec-kit/leave-service/internal/repository"
	apperrors "github.com/spec-kit/leave-service/pkg/util"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

type stubResetRepo struct {
	tokens map[string]string
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{tokens: make(map[string]string)}
}

func (r *stubResetRepo) Create(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *stubResetRepo) Consume(_ context.Context, token string) (string, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return "", repository.ErrResetTokenNotFound
	}
	delete(r.tokens, token)
	return userID, nil
}

func newTestAuthService(users *stubUserRepo, resets *stubResetRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}
	deps := AuthDependencies{UserRepo: users}
	if resets != nil {
		deps.PasswordResetRepo = resets
	}
	return NewAuthService(cfg, deps)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	user, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user id to be set")
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected employee role, got %s", user.Role)
	}
	if user.PasswordHash == "pw1" {
		t.Fatal("expected password to be hashed")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "other@x.com", "pw2")
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice2", "alice@x.com", "pw2")
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, token, exp, err := svc.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID() != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, claims.UserID())
	}
	if claims.Role != domain.RoleEmployee {
		t.Fatalf("expected role employee in claims, got %s", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := svc.Login(ctx, "alice@x.com", "wrong")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, _, _, err := svc.Login(context.Background(), "ghost@x.com", "pw")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "bob@x.com", "pw2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	users, err := svc.ListUsers(ctx, alice)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if _, err := svc.ListUsers(ctx, nil); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for anonymous caller, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, alice, "wrong", "pw2"); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(ctx, alice, "pw1", "pw2"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "alice@x.com", "pw1"); err == nil {
		t.Fatal("expected old password to be rejected")
	}
	if _, _, _, err := svc.Login(ctx, "alice@x.com", "pw2"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthService_PasswordReset_RoundTrip(t *testing.T) {
	resets := newStubResetRepo()
	svc := newTestAuthService(newStubUserRepo(), resets)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, err := svc.RequestPasswordReset(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, token, "pw2"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "alice@x.com", "pw2"); err != nil {
		t.Fatalf("login with reset password: %v", err)
	}

	// Single use: a second redemption fails.
	if err := svc.ConfirmPasswordReset(ctx, token, "pw3"); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for reused token, got %v", err)
	}
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)
	ctx := context.Background()

	admin, created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "Admin@123")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !created {
		t.Fatal("expected admin to be created")
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}

	again, created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "Admin@123")
	if err != nil {
		t.Fatalf("EnsureAdmin second run: %v", err)
	}
	if created {
		t.Fatal("expected second run to be a no-op")
	}
	if again.ID != admin.ID {
		t.Fatalf("expected same account, got %s vs %s", again.ID, admin.ID)
	}
}
