package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// CourseService implements the course catalog. Courses have no owner,
// so mutations are open to any authenticated caller; visibility of the
// content behind a course is what enrollments control.
type CourseService struct {
	repo   ports.CourseRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewCourseService(repo ports.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, logger: logger, now: time.Now}
}

func (s *CourseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, input ports.CourseInput, caller domain.Identity) (*domain.Course, error) {
	now := s.now().UTC()
	course := &domain.Course{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", created.ID).Str("user_id", caller.UserID).Msg("course created")
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, id string, input ports.CourseInput, caller domain.Identity) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Name = input.Name
	course.Description = input.Description
	course.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, id string, caller domain.Identity) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("course_id", id).Str("user_id", caller.UserID).Msg("course deleted")
	return nil
}
