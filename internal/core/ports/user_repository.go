package ports

import (
	"context"
	"time"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// UserRepository defines persistence operations over user records.
// Uniqueness of email and username is enforced by the store itself
// (unique indexes); Create surfaces a violation as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdatePresence persists the durable presence fields on the record.
	UpdatePresence(ctx context.Context, id string, online bool, lastSeen time.Time) error
}
