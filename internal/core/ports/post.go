package ports

import (
	"context"

	"github.com/campusworks/campus-api/internal/core/domain"
)

// PostRepository defines persistence operations for discussion posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// ListByDiscussion returns posts ordered by creation time ascending.
	ListByDiscussion(ctx context.Context, discussionID string) ([]*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// PostService defines the post use cases.
type PostService interface {
	ListByDiscussion(ctx context.Context, discussionID string) ([]*domain.Post, error)
	Create(ctx context.Context, discussionID, content string, caller domain.Identity) (*domain.Post, error)
	Update(ctx context.Context, id, content string, caller domain.Identity) (*domain.Post, error)
	Delete(ctx context.Context, id string, caller domain.Identity) error
}
