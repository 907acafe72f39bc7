package services

import (
	"context"
	"errors"
	"strings"

	"staynest/internal/auth"
	"staynest/internal/domain"
	"staynest/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *auth.Issuer
}

func NewAuthService(users *repos.UserRepo, tokens *auth.Issuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Signup registers a regular user and returns it with a fresh session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Name:  strings.TrimSpace(name),
		Hash:  string(hash),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrBadCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", domain.ErrBadCredentials
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Authenticate resolves a session token to its user. The role comes from the
// user row, not the token, so a demoted account loses access immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrBadToken
	}
	u, err := s.Users.ByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadToken
		}
		return nil, err
	}
	return u, nil
}
