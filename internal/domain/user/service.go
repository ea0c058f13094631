package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// ErrInvalidCredentials covers both unknown email and wrong password so a
// login attempt cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type SignupInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" {
		return nil, domainerr.New(domainerr.KindValidation, "email is required")
	}
	if len(in.Password) < 8 {
		return nil, domainerr.New(domainerr.KindValidation, "password must be at least 8 characters")
	}
	if in.Role == "" {
		in.Role = RoleJunior
	}
	if !validRoles[in.Role] {
		return nil, domainerr.Newf(domainerr.KindValidation, "invalid role: %s", in.Role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:          in.Email,
		HashedPassword: hash,
		FullName:       in.FullName,
		Role:           in.Role,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.HashedPassword, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
