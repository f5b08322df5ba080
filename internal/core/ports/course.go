package ports

import (
	"context"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// CourseInput carries the writable fields of a course.
type CourseInput struct {
	Name        string
	Description string
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// FindByIDs returns the courses matching the given ids; ids with no
	// matching course are silently dropped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseService defines the course use cases. Courses carry no owner;
// any authenticated caller may mutate them, and the full catalog is
// readable without authentication.
type CourseService interface {
	List(ctx context.Context) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, input CourseInput, caller domain.Identity) (*domain.Course, error)
	Update(ctx context.Context, id string, input CourseInput, caller domain.Identity) (*domain.Course, error)
	Delete(ctx context.Context, id string, caller domain.Identity) error
}
