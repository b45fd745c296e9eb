// AngelaMos | 2026
// service_test.go

package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
)

type fakePostRepo struct {
	byID    map[int64]*Post
	created []*Post
	updated []*Post
	deleted []int64
}

func newFakePostRepo(posts ...*Post) *fakePostRepo {
	r := &fakePostRepo{byID: make(map[int64]*Post)}
	for _, p := range posts {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *Post) error {
	post.ID = int64(len(r.created) + 1)
	r.created = append(r.created, post)
	r.byID[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func (r *fakePostRepo) GetByIDAndBumpViews(
	_ context.Context,
	id int64,
) (*Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	p.ViewsCount++
	return p, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *Post) error {
	r.updated = append(r.updated, post)
	r.byID[post.ID] = post
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakePostRepo) List(
	_ context.Context,
	_ ListPostsParams,
) ([]Post, int, error) {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, len(out), nil
}

type staticChecker struct {
	verified bool
}

func (c staticChecker) IsVerifiedStudent(
	_ context.Context,
	_ int64,
) (bool, error) {
	return c.verified, nil
}

func validCreateRequest() CreatePostRequest {
	return CreatePostRequest{
		Title:    "Semester progress",
		Content:  "Passed all units.",
		PostType: TypeAchievements,
	}
}

func TestCreateVerifiedStudentIsFundable(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewService(repo, staticChecker{verified: true})

	resp, err := svc.Create(context.Background(), 7, validCreateRequest())
	require.NoError(t, err)
	require.True(t, resp.IsFundable)
	require.Equal(t, StatusPublished, resp.Status)
	require.True(t, resp.IsPublic)
}

func TestCreateUnverifiedAuthorNotFundable(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewService(repo, staticChecker{verified: false})

	resp, err := svc.Create(context.Background(), 7, validCreateRequest())
	require.NoError(t, err)
	require.False(t, resp.IsFundable)
}

func TestUpdateRecomputesFundability(t *testing.T) {
	// The post was fundable when written; the author has since lost
	// verified standing.
	repo := newFakePostRepo(&Post{
		ID:         1,
		AuthorID:   7,
		Title:      "Semester progress",
		Content:    "Passed all units.",
		PostType:   TypeAchievements,
		IsFundable: true,
		Status:     StatusPublished,
	})
	svc := NewService(repo, staticChecker{verified: false})

	newTitle := "Semester progress, updated"
	resp, err := svc.Update(context.Background(), 7, false, 1, UpdatePostRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	require.False(t, resp.IsFundable)
	require.Equal(t, newTitle, resp.Title)
}

func TestUpdateByStrangerForbidden(t *testing.T) {
	repo := newFakePostRepo(&Post{ID: 1, AuthorID: 7})
	svc := NewService(repo, staticChecker{verified: true})

	_, err := svc.Update(context.Background(), 8, false, 1, UpdatePostRequest{})
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Update(context.Background(), 8, true, 1, UpdatePostRequest{})
	require.NoError(t, err)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newFakePostRepo(&Post{ID: 1, AuthorID: 7})
	svc := NewService(repo, staticChecker{})

	err := svc.Delete(context.Background(), 8, false, 1)
	require.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(context.Background(), 7, false, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, repo.deleted)
}

func TestGetBumpsViews(t *testing.T) {
	repo := newFakePostRepo(&Post{ID: 1, AuthorID: 7})
	svc := NewService(repo, staticChecker{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ViewsCount)
}

func TestDonationTargetReflectsFundability(t *testing.T) {
	repo := newFakePostRepo(
		&Post{ID: 1, AuthorID: 7, IsFundable: true},
		&Post{ID: 2, AuthorID: 8, IsFundable: false},
	)
	svc := NewService(repo, staticChecker{})

	target, err := svc.DonationTarget(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, donation.TargetPost, target.Kind)
	require.Equal(t, int64(7), target.OwnerID)
	require.True(t, target.Fundable)

	target, err = svc.DonationTarget(context.Background(), 2)
	require.NoError(t, err)
	require.False(t, target.Fundable)

	_, err = svc.DonationTarget(context.Background(), 404)
	require.ErrorIs(t, err, core.ErrNotFound)
}
