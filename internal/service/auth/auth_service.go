package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/scenicairways/backend/internal/domain"
	"github.com/scenicairways/backend/internal/repository"
)

type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
}

// TokenIssuer signs an access token for an authenticated user.
type TokenIssuer interface {
	GenerateToken(user *domain.User) (string, error)
}

// AuthResult is the payload returned to the client after login or
// registration.
type AuthResult struct {
	Token string
	User  domain.User
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login authenticates by username and password. Every failure collapses
// to ErrInvalidCredentials so the response never reveals whether the
// username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &AuthResult{Token: token, User: *user}, nil
}

// Register creates the user, then runs the same login flow with the
// freshly supplied credentials. Unlike Login, failures here surface
// their underlying error.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.Login(ctx, username, password)
}

var _ AuthUseCase = (*AuthService)(nil)
