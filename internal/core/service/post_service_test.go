package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
)

type stubPostRepo struct {
	posts  map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.nextID++
	created := *p
	created.ID = fmt.Sprintf("p%d", r.nextID)
	r.posts[created.ID] = &created
	return &created, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) ListByDiscussion(_ context.Context, discussionID string) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.DiscussionID == discussionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[p.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *p
	r.posts[p.ID] = &cp
	return p, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func newTestPostService(t *testing.T) (*PostService, *stubDiscussionRepo, *stubPostRepo) {
	t.Helper()
	discussions := newStubDiscussionRepo()
	posts := newStubPostRepo()
	return NewPostService(posts, discussions, zerolog.Nop()), discussions, posts
}

func TestPostCreateInExistingDiscussion(t *testing.T) {
	svc, discussions, _ := newTestPostService(t)
	discussions.discussions["d1"] = &domain.Discussion{ID: "d1", CreatedBy: "u9"}

	p, err := svc.Create(context.Background(), "d1", "first reply", alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.UserID != alice.UserID {
		t.Fatalf("UserID = %q, want %q", p.UserID, alice.UserID)
	}
	if p.DiscussionID != "d1" {
		t.Fatalf("DiscussionID = %q", p.DiscussionID)
	}
}

func TestPostCreateInMissingDiscussion(t *testing.T) {
	svc, _, _ := newTestPostService(t)
	if _, err := svc.Create(context.Background(), "nope", "reply", alice); !errors.Is(err, domain.ErrDiscussionNotFound) {
		t.Fatalf("Create: %v", err)
	}
}

func TestPostUpdateOwnershipGate(t *testing.T) {
	svc, discussions, _ := newTestPostService(t)
	discussions.discussions["d1"] = &domain.Discussion{ID: "d1"}

	p, err := svc.Create(context.Background(), "d1", "mine", alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), p.ID, "edited", alice); err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	if _, err := svc.Update(context.Background(), p.ID, "hijack", bob); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update by non-owner: %v, want ErrForbidden", err)
	}
}

func TestPostDeleteOwnershipGate(t *testing.T) {
	svc, discussions, posts := newTestPostService(t)
	discussions.discussions["d1"] = &domain.Discussion{ID: "d1"}

	p, err := svc.Create(context.Background(), "d1", "mine", alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, bob); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Delete by non-owner: %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), p.ID, alice); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, ok := posts.posts[p.ID]; ok {
		t.Fatal("post still stored after delete")
	}
}
