package user

import (
	"context"
	"errors"

	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/auth"
)

// TokenIssuer issues and validates identity tokens.
type TokenIssuer interface {
	GeneratePair(userID int64) (*auth.TokenPair, error)
	Validate(token string, typ auth.TokenType) (int64, error)
}

// DemoConfig controls the shared demo account.
type DemoConfig struct {
	Enabled bool
	Email   string
}

// Service handles registration, login and token-based authentication.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	demo   DemoConfig
}

func NewService(repo Repository, tokens TokenIssuer, demo DemoConfig) *Service {
	return &Service{repo: repo, tokens: tokens, demo: demo}
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.Validation("Password must be 72 bytes or fewer")
		}
		return nil, err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return s.signIn(u)
}

// Login checks the credentials. Unknown email and wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || auth.VerifyPassword(u.PasswordHash, password) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(u)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	userID, err := s.tokens.Validate(refreshToken, auth.TokenRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	return s.tokens.GeneratePair(u.ID)
}

// DemoLogin signs in as the seeded demo account.
func (s *Service) DemoLogin(ctx context.Context) (*AuthResult, error) {
	if !s.demo.Enabled {
		return nil, ErrDemoDisabled
	}

	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(s.demo.Email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrDemoNotInitialized
	}

	return s.signIn(u)
}

// Authenticate resolves an access token to the id of an existing user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (int64, error) {
	userID, err := s.tokens.Validate(accessToken, auth.TokenAccess)
	if err != nil {
		return 0, ErrNotAuthenticated
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, ErrNotAuthenticated
		}
		return 0, err
	}

	return userID, nil
}

// Me returns the authenticated user's public profile.
func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) signIn(u *User) (*AuthResult, error) {
	tokens, err := s.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Tokens: tokens}, nil
}
