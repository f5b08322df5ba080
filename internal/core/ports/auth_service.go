package ports

import (
	"context"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// SignupInput carries the credentials for a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned on successful signup or signin.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// AuthService defines the credential use cases. SignupAdmin shares the
// signup path with the role fixed to ADMIN; it intentionally has no
// caller-role gate of its own, matching the behavior this service
// replaces.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	SignupAdmin(ctx context.Context, input SignupInput) (*AuthResult, error)
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
}
