package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// EnrollmentService implements course access grants. Enrolling a user
// that is already enrolled is not an error; the grant is skipped. The
// existence check and the insert are separate store calls, so the
// store's unique (course, user) index is the backstop for concurrent
// grants, surfaced as domain.ErrEnrollmentExists and likewise skipped.
type EnrollmentService struct {
	repo    ports.EnrollmentRepository
	courses ports.CourseRepository
	users   ports.UserRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewEnrollmentService(repo ports.EnrollmentRepository, courses ports.CourseRepository, users ports.UserRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:    repo,
		courses: courses,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

// Enroll grants course access to each listed user on behalf of the
// caller. Every user id must name an existing account; already-enrolled
// users are skipped.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID string, userIDs []string, caller domain.Identity) ([]*domain.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	granted := make([]*domain.Enrollment, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			return nil, err
		}

		enrolled, err := s.repo.Exists(ctx, courseID, userID)
		if err != nil {
			return nil, err
		}
		if enrolled {
			continue
		}

		created, err := s.repo.Create(ctx, &domain.Enrollment{
			CourseID:   courseID,
			UserID:     userID,
			GrantedBy:  caller.UserID,
			EnrolledAt: s.now().UTC(),
		})
		if err != nil {
			if errors.Is(err, domain.ErrEnrollmentExists) {
				continue
			}
			return nil, err
		}
		granted = append(granted, created)
	}

	s.logger.Info().
		Str("course_id", courseID).
		Str("granted_by", caller.UserID).
		Int("granted", len(granted)).
		Msg("users enrolled")

	return granted, nil
}

// EnrolledUsers returns the roster of a course. Enrollments whose
// account has since been deleted are dropped from the result.
func (s *EnrollmentService) EnrolledUsers(ctx context.Context, courseID string) ([]ports.EnrolledUser, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	roster := make([]ports.EnrolledUser, 0, len(enrollments))
	for _, e := range enrollments {
		user, err := s.users.FindByID(ctx, e.UserID)
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		roster = append(roster, ports.EnrolledUser{
			EnrollmentID: e.ID,
			User:         user.Public(),
			GrantedBy:    e.GrantedBy,
			EnrolledAt:   e.EnrolledAt,
		})
	}
	return roster, nil
}

// EnrolledCourses returns the courses the user has been granted access to.
func (s *EnrollmentService) EnrolledCourses(ctx context.Context, userID string) ([]*domain.Course, error) {
	enrollments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []*domain.Course{}, nil
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	return s.courses.FindByIDs(ctx, courseIDs)
}
