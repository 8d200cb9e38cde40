package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/auth"
)

var (
	ErrUserNotFound        = apperror.NotFound("User not found")
	ErrEmailTaken          = apperror.Conflict("Email already registered")
	ErrInvalidCredentials  = apperror.Unauthenticated("Invalid email or password")
	ErrInvalidRefreshToken = apperror.Unauthenticated("Invalid refresh token")
	ErrNotAuthenticated    = apperror.Unauthenticated("Invalid authentication credentials")
	ErrDemoDisabled        = apperror.NotFound("Demo mode is disabled")
	ErrDemoNotInitialized  = apperror.Unavailable("Demo user is not initialized")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

const (
	minNameLength     = 2
	maxNameLength     = 120
	maxEmailLength    = 255
	minPasswordLength = 8
)

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *RegisterParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
}

func (p *RegisterParams) Validate() error {
	n := utf8.RuneCountInString(p.Name)
	if n < minNameLength || n > maxNameLength {
		return apperror.Validation("name must be between 2 and 120 characters")
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(p.Password) < minPasswordLength {
		return apperror.Validation("password must be at least 8 characters")
	}
	if len(p.Password) > auth.MaxPasswordBytes {
		return apperror.Validation("Password must be 72 bytes or fewer")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.Validation("email is required")
	}
	if len(email) > maxEmailLength {
		return apperror.Validation("email must be 255 characters or less")
	}
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") || strings.ContainsAny(email, " \t\r\n") {
		return apperror.Validation("email is not a valid email address")
	}
	return nil
}

// AuthResult is a user together with a fresh token pair.
type AuthResult struct {
	User   *User           `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}
