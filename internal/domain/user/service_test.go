package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domainerr.New(domainerr.KindConflict, "a user with this email already exists")
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewService(repo, tokens), repo
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Signup(context.Background(), SignupInput{
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", u.Email)
	}
	if u.Role != RoleJunior {
		t.Errorf("expected default role junior, got %q", u.Role)
	}
	if !u.IsActive {
		t.Error("expected new user to be active")
	}
	if u.HashedPassword == "correct horse" {
		t.Error("password stored in plaintext")
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{Password: "long enough"}},
		{"short password", SignupInput{Email: "a@b.com", Password: "short"}},
		{"bad role", SignupInput{Email: "a@b.com", Password: "long enough", Role: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.in)
			if !domainerr.IsKind(err, domainerr.KindValidation) {
				t.Errorf("expected KindValidation, got %v", err)
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	in := SignupInput{Email: "dup@example.com", Password: "long enough"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	_, err := svc.Signup(context.Background(), in)
	if !domainerr.IsKind(err, domainerr.KindConflict) {
		t.Errorf("expected KindConflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Password: "correct horse",
		Role:     RoleSenior,
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	u, token, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if u.Role != RoleSenior {
		t.Errorf("expected senior role, got %q", u.Role)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	for _, u := range repo.users {
		u.IsActive = false
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user: expected ErrInvalidCredentials, got %v", err)
	}
}
