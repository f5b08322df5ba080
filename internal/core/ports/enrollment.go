package ports

import (
	"context"
	"time"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// EnrolledUser is one row of a course roster: the enrolled account plus
// the grant metadata.
type EnrolledUser struct {
	EnrollmentID string            `json:"enrollment_id"`
	User         domain.PublicUser `json:"user"`
	GrantedBy    string            `json:"granted_by,omitempty"`
	EnrolledAt   time.Time         `json:"enrolled_at"`
}

// EnrollmentRepository defines persistence operations for enrollments.
// The (course, user) pair is unique in the store; Create surfaces a
// violation as domain.ErrEnrollmentExists.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	Exists(ctx context.Context, courseID, userID string) (bool, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
}

// EnrollmentService defines the enrollment use cases. Granting access
// and reading a course roster are admin operations; the route layer
// enforces that.
type EnrollmentService interface {
	// Enroll grants course access to each listed user, skipping users
	// that are already enrolled, and returns the enrollments it created.
	Enroll(ctx context.Context, courseID string, userIDs []string, caller domain.Identity) ([]*domain.Enrollment, error)
	EnrolledUsers(ctx context.Context, courseID string) ([]EnrolledUser, error)
	// EnrolledCourses returns the courses the given user has access to.
	EnrolledCourses(ctx context.Context, userID string) ([]*domain.Course, error)
}
