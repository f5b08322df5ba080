package ports

import (
	"context"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// DiscussionInput carries the writable fields of a discussion.
type DiscussionInput struct {
	CourseID    string
	Title       string
	Description string
}

// DiscussionRepository defines persistence operations for discussions.
type DiscussionRepository interface {
	Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error)
	FindByID(ctx context.Context, id string) (*domain.Discussion, error)
	// List returns all discussions, or only those of a course when
	// courseID is non-empty, ordered by creation time.
	List(ctx context.Context, courseID string) ([]*domain.Discussion, error)
	// ListByCourseIDs returns the discussions of the given courses,
	// ordered by creation time.
	ListByCourseIDs(ctx context.Context, courseIDs []string) ([]*domain.Discussion, error)
	Update(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error)
	Delete(ctx context.Context, id string) error
}

// DiscussionService defines the discussion use cases. Listing is scoped
// by the caller: admins see everything, ordinary users see only the
// discussions of courses they are enrolled in, and anonymous callers
// get an empty list. Mutations are ownership-gated against the caller
// identity, and creation additionally requires enrollment in the course
// unless the caller is an admin.
type DiscussionService interface {
	List(ctx context.Context, courseID string, caller domain.Identity) ([]*domain.Discussion, error)
	Get(ctx context.Context, id string) (*domain.Discussion, error)
	Create(ctx context.Context, input DiscussionInput, caller domain.Identity) (*domain.Discussion, error)
	Update(ctx context.Context, id string, input DiscussionInput, caller domain.Identity) (*domain.Discussion, error)
	Delete(ctx context.Context, id string, caller domain.Identity) error
}
