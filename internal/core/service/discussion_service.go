package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// DiscussionService implements discussion threads. What a caller can
// list follows their enrollments: admins see every thread, ordinary
// users only the threads of courses they are enrolled in, anonymous
// callers nothing. Creating a thread requires enrollment in its course
// unless the caller is an admin. Updates and deletes are gated on
// ownership: only the creator may mutate a thread, except for legacy
// records with no recorded creator.
type DiscussionService struct {
	repo        ports.DiscussionRepository
	enrollments ports.EnrollmentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewDiscussionService(repo ports.DiscussionRepository, enrollments ports.EnrollmentRepository, logger zerolog.Logger) *DiscussionService {
	return &DiscussionService{repo: repo, enrollments: enrollments, logger: logger, now: time.Now}
}

func (s *DiscussionService) List(ctx context.Context, courseID string, caller domain.Identity) ([]*domain.Discussion, error) {
	if caller.IsAdmin() {
		return s.repo.List(ctx, courseID)
	}
	if caller.IsZero() {
		return []*domain.Discussion{}, nil
	}

	enrollments, err := s.enrollments.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if courseID == "" || e.CourseID == courseID {
			courseIDs = append(courseIDs, e.CourseID)
		}
	}
	if len(courseIDs) == 0 {
		return []*domain.Discussion{}, nil
	}
	return s.repo.ListByCourseIDs(ctx, courseIDs)
}

func (s *DiscussionService) Get(ctx context.Context, id string) (*domain.Discussion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DiscussionService) Create(ctx context.Context, input ports.DiscussionInput, caller domain.Identity) (*domain.Discussion, error) {
	if !caller.IsAdmin() {
		enrolled, err := s.enrollments.Exists(ctx, input.CourseID, caller.UserID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, domain.ErrForbidden
		}
	}

	now := s.now().UTC()
	d := &domain.Discussion{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("discussion_id", created.ID).Str("user_id", caller.UserID).Msg("discussion created")
	return created, nil
}

func (s *DiscussionService) Update(ctx context.Context, id string, input ports.DiscussionInput, caller domain.Identity) (*domain.Discussion, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeOwner(caller, d.CreatedBy); err != nil {
		return nil, err
	}

	d.CourseID = input.CourseID
	d.Title = input.Title
	d.Description = input.Description
	d.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, d)
}

func (s *DiscussionService) Delete(ctx context.Context, id string, caller domain.Identity) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(caller, d.CreatedBy); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("discussion_id", id).Str("user_id", caller.UserID).Msg("discussion deleted")
	return nil
}
