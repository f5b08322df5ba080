package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// PostService implements replies inside discussion threads.
type PostService struct {
	posts       ports.PostRepository
	discussions ports.DiscussionRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPostService(posts ports.PostRepository, discussions ports.DiscussionRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, discussions: discussions, logger: logger, now: time.Now}
}

func (s *PostService) ListByDiscussion(ctx context.Context, discussionID string) ([]*domain.Post, error) {
	if _, err := s.discussions.FindByID(ctx, discussionID); err != nil {
		return nil, err
	}
	return s.posts.ListByDiscussion(ctx, discussionID)
}

func (s *PostService) Create(ctx context.Context, discussionID, content string, caller domain.Identity) (*domain.Post, error) {
	if _, err := s.discussions.FindByID(ctx, discussionID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &domain.Post{
		DiscussionID: discussionID,
		Content:      content,
		UserID:       caller.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("discussion_id", discussionID).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id, content string, caller domain.Identity) (*domain.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeOwner(caller, p.UserID); err != nil {
		return nil, err
	}

	p.Content = content
	p.UpdatedAt = s.now().UTC()

	return s.posts.Update(ctx, p)
}

func (s *PostService) Delete(ctx context.Context, id string, caller domain.Identity) error {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(caller, p.UserID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
