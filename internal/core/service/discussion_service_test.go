package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

type stubDiscussionRepo struct {
	discussions map[string]*domain.Discussion
	nextID      int
}

func newStubDiscussionRepo() *stubDiscussionRepo {
	return &stubDiscussionRepo{discussions: make(map[string]*domain.Discussion)}
}

func (r *stubDiscussionRepo) Create(_ context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	r.nextID++
	created := *d
	created.ID = fmt.Sprintf("d%d", r.nextID)
	r.discussions[created.ID] = &created
	return &created, nil
}

func (r *stubDiscussionRepo) FindByID(_ context.Context, id string) (*domain.Discussion, error) {
	d, ok := r.discussions[id]
	if !ok {
		return nil, domain.ErrDiscussionNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDiscussionRepo) List(_ context.Context, courseID string) ([]*domain.Discussion, error) {
	var out []*domain.Discussion
	for _, d := range r.discussions {
		if courseID == "" || d.CourseID == courseID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubDiscussionRepo) ListByCourseIDs(_ context.Context, courseIDs []string) ([]*domain.Discussion, error) {
	var out []*domain.Discussion
	for _, d := range r.discussions {
		for _, id := range courseIDs {
			if d.CourseID == id {
				cp := *d
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (r *stubDiscussionRepo) Update(_ context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	if _, ok := r.discussions[d.ID]; !ok {
		return nil, domain.ErrDiscussionNotFound
	}
	cp := *d
	r.discussions[d.ID] = &cp
	return d, nil
}

func (r *stubDiscussionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.discussions[id]; !ok {
		return domain.ErrDiscussionNotFound
	}
	delete(r.discussions, id)
	return nil
}

// stubEnrollmentRepo keys grants as "courseID/userID".
type stubEnrollmentRepo struct {
	grants map[string]*domain.Enrollment
	nextID int
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{grants: make(map[string]*domain.Enrollment)}
}

func (r *stubEnrollmentRepo) key(courseID, userID string) string {
	return courseID + "/" + userID
}

func (r *stubEnrollmentRepo) enroll(courseID, userID string) {
	r.nextID++
	r.grants[r.key(courseID, userID)] = &domain.Enrollment{
		ID:       fmt.Sprintf("e%d", r.nextID),
		CourseID: courseID,
		UserID:   userID,
	}
}

func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	if _, ok := r.grants[r.key(e.CourseID, e.UserID)]; ok {
		return nil, domain.ErrEnrollmentExists
	}
	r.nextID++
	created := *e
	created.ID = fmt.Sprintf("e%d", r.nextID)
	r.grants[r.key(e.CourseID, e.UserID)] = &created
	return &created, nil
}

func (r *stubEnrollmentRepo) Exists(_ context.Context, courseID, userID string) (bool, error) {
	_, ok := r.grants[r.key(courseID, userID)]
	return ok, nil
}

func (r *stubEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.grants {
		if e.CourseID == courseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.grants {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

var (
	alice = domain.Identity{UserID: "u1", Role: domain.RoleUser}
	bob   = domain.Identity{UserID: "u2", Role: domain.RoleUser}
	root  = domain.Identity{UserID: "u9", Role: domain.RoleAdmin}
)

func newTestDiscussionService(enrolled ...string) (*DiscussionService, *stubEnrollmentRepo) {
	enrollments := newStubEnrollmentRepo()
	for i := 0; i+1 < len(enrolled); i += 2 {
		enrollments.enroll(enrolled[i], enrolled[i+1])
	}
	return NewDiscussionService(newStubDiscussionRepo(), enrollments, zerolog.Nop()), enrollments
}

func TestDiscussionCreateStampsCreator(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID)

	d, err := svc.Create(context.Background(), ports.DiscussionInput{
		CourseID: "go101", Title: "Generics",
	}, alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.CreatedBy != alice.UserID {
		t.Fatalf("CreatedBy = %q, want %q", d.CreatedBy, alice.UserID)
	}
}

func TestDiscussionCreateRequiresEnrollment(t *testing.T) {
	svc, _ := newTestDiscussionService()

	if _, err := svc.Create(context.Background(), ports.DiscussionInput{
		CourseID: "go101", Title: "Generics",
	}, alice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Create without enrollment: %v, want ErrForbidden", err)
	}

	// Admins are exempt from the enrollment requirement.
	if _, err := svc.Create(context.Background(), ports.DiscussionInput{
		CourseID: "go101", Title: "Announcements",
	}, root); err != nil {
		t.Fatalf("Create by admin: %v", err)
	}
}

func TestDiscussionListScopedByCaller(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID, "go201", bob.UserID)

	if _, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go101", Title: "Generics"}, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go201", Title: "Channels"}, bob); err != nil {
		t.Fatalf("Create: %v", err)
	}

	anon, err := svc.List(context.Background(), "", domain.Identity{})
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if len(anon) != 0 {
		t.Fatalf("anonymous sees %d discussions, want 0", len(anon))
	}

	mine, err := svc.List(context.Background(), "", alice)
	if err != nil {
		t.Fatalf("List user: %v", err)
	}
	if len(mine) != 1 || mine[0].CourseID != "go101" {
		t.Fatalf("user listing = %+v, want only go101", mine)
	}

	all, err := svc.List(context.Background(), "", root)
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d discussions, want 2", len(all))
	}
}

func TestDiscussionListCourseFilterRespectsEnrollment(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID)

	if _, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go101", Title: "Generics"}, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go201", Title: "Channels"}, root); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Filtering by a course the caller is not enrolled in yields nothing.
	out, err := svc.List(context.Background(), "go201", alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("listing = %+v, want empty", out)
	}

	out, err = svc.List(context.Background(), "go101", alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("listing has %d entries, want 1", len(out))
	}
}

func TestDiscussionUpdateByOwner(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID)

	d, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go101", Title: "Generics"}, alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), d.ID, ports.DiscussionInput{
		CourseID: "go101", Title: "Generics in practice",
	}, alice)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Generics in practice" {
		t.Fatalf("Title = %q", updated.Title)
	}
}

func TestDiscussionUpdateByNonOwnerForbidden(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID)

	d, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go101", Title: "Generics"}, alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), d.ID, ports.DiscussionInput{Title: "hijack"}, bob); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update by non-owner: %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), d.ID, bob); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Delete by non-owner: %v, want ErrForbidden", err)
	}
}

func TestDiscussionWithoutCreatorIsMutableByAnyone(t *testing.T) {
	repo := newStubDiscussionRepo()
	svc := NewDiscussionService(repo, newStubEnrollmentRepo(), zerolog.Nop())

	// Legacy record with no recorded creator.
	repo.discussions["d0"] = &domain.Discussion{ID: "d0", CourseID: "go101", Title: "Old thread"}

	if _, err := svc.Update(context.Background(), "d0", ports.DiscussionInput{CourseID: "go101", Title: "Renamed"}, bob); err != nil {
		t.Fatalf("Update of creator-less discussion: %v", err)
	}
}

func TestDiscussionDeleteByOwner(t *testing.T) {
	svc, _ := newTestDiscussionService("go101", alice.UserID)

	d, err := svc.Create(context.Background(), ports.DiscussionInput{CourseID: "go101", Title: "Generics"}, alice)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), d.ID, alice); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), d.ID); !errors.Is(err, domain.ErrDiscussionNotFound) {
		t.Fatalf("Get after delete: %v", err)
	}
}

func TestDiscussionGetUnknown(t *testing.T) {
	svc, _ := newTestDiscussionService()
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrDiscussionNotFound) {
		t.Fatalf("Get: %v", err)
	}
}
