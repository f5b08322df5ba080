package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
	"github.com/campusworks/campus-api/internal/pkg/token"
)

// AuthService implements signup and signin. The existence check and the
// insert are two separate store calls with no transaction around them;
// two concurrent signups for the same handle can both pass the check,
// and the store's unique index is the backstop (surfaced as
// domain.ErrUserExists by the repository).
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	presence ports.PresenceTracker // nil when the variant has no presence
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the credential use cases. presence may be nil;
// only the chat variant records presence at signin.
func NewAuthService(repo ports.UserRepository, codec *token.Codec, presence ports.PresenceTracker, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		codec:    codec,
		presence: presence,
		logger:   logger,
		now:      time.Now,
	}
}

// Signup creates an ordinary USER account and issues its first token.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	return s.signup(ctx, input, domain.RoleUser)
}

// SignupAdmin creates an ADMIN account. There is deliberately no
// caller-role gate on this path; the route is as open as ordinary
// signup, preserving the behavior of the system this replaces.
func (s *AuthService) SignupAdmin(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	return s.signup(ctx, input, domain.RoleAdmin)
}

func (s *AuthService) signup(ctx context.Context, input ports.SignupInput, role domain.Role) (*ports.AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserExists, input.Email)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if input.Username != "" {
		if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserExists, input.Username)
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserExists, input.Email)
		}
		return nil, err
	}

	signed, err := s.issueToken(created, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user signed up")

	return &ports.AuthResult{Token: signed, User: created.Public()}, nil
}

// Signin verifies credentials and issues a fresh token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if s.presence != nil {
		if err := s.repo.UpdatePresence(ctx, user.ID, true, now); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("presence record update failed")
		}
		if err := s.presence.SetOnline(ctx, user.ID, now); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("presence tracker update failed")
		}
		user.IsOnline = true
		user.LastSeen = &now
	}

	signed, err := s.issueToken(user, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")

	return &ports.AuthResult{Token: signed, User: user.Public()}, nil
}

func (s *AuthService) issueToken(user *domain.User, now time.Time) (string, error) {
	return s.codec.Issue(user.ID, user.Role, token.Aux{
		Email:    user.Email,
		Username: user.Username,
	}, now)
}
