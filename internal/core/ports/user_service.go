package ports

import (
	"context"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// UserService exposes account listings. The chat variant decorates the
// results with live presence; the classroom variant serves them as-is.
type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
}
