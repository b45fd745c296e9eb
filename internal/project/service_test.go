// AngelaMos | 2026
// service_test.go

package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
)

type fakeProjectRepo struct {
	byID    map[int64]*Project
	created []*Project
}

func newFakeProjectRepo(projects ...*Project) *fakeProjectRepo {
	r := &fakeProjectRepo{byID: make(map[int64]*Project)}
	for _, p := range projects {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, project *Project) error {
	project.ID = int64(len(r.created) + 1)
	r.created = append(r.created, project)
	r.byID[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) GetByID(
	_ context.Context,
	id int64,
) (*Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByIDAndBumpViews(
	_ context.Context,
	id int64,
) (*Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	p.ViewsCount++
	return p, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *Project) error {
	r.byID[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProjectRepo) List(
	_ context.Context,
	_ ListProjectsParams,
) ([]Project, int, error) {
	out := make([]Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func validCreateRequest() CreateProjectRequest {
	return CreateProjectRequest{
		Title:       "Open attendance tracker",
		Description: "A tracker for campus club attendance.",
		FundingGoal: 2000,
		Currency:    "USDC",
	}
}

func TestCreateStartsFundable(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), 7, validCreateRequest())
	require.NoError(t, err)

	require.Equal(t, StatusFundable, resp.Status)
	require.Equal(t, int64(7), resp.OwnerID)
	require.True(t, resp.IsPublic)
	require.NotNil(t, resp.PublishedAt)
}

func TestUpdateOwnership(t *testing.T) {
	repo := newFakeProjectRepo(&Project{
		ID:      1,
		OwnerID: 7,
		Status:  StatusFundable,
	})
	svc := NewService(repo)

	newTitle := "Renamed tracker"
	_, err := svc.Update(context.Background(), 8, false, 1, UpdateProjectRequest{
		Title: &newTitle,
	})
	require.ErrorIs(t, err, core.ErrForbidden)

	resp, err := svc.Update(context.Background(), 7, false, 1, UpdateProjectRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	require.Equal(t, newTitle, resp.Title)
}

func TestUpdateToPublishedStampsPublishedAt(t *testing.T) {
	repo := newFakeProjectRepo(&Project{
		ID:      1,
		OwnerID: 7,
		Status:  StatusDraft,
	})
	svc := NewService(repo)

	status := StatusPublished
	resp, err := svc.Update(context.Background(), 7, false, 1, UpdateProjectRequest{
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, StatusPublished, resp.Status)
	require.NotNil(t, resp.PublishedAt)
}

func TestDonationTargetFollowsStatus(t *testing.T) {
	repo := newFakeProjectRepo(
		&Project{ID: 1, OwnerID: 7, Status: StatusFundable},
		&Project{ID: 2, OwnerID: 7, Status: StatusPublished},
		&Project{ID: 3, OwnerID: 7, Status: StatusDraft},
		&Project{ID: 4, OwnerID: 7, Status: StatusCompleted},
	)
	svc := NewService(repo)

	fundable := map[int64]bool{1: true, 2: true, 3: false, 4: false}
	for id, want := range fundable {
		target, err := svc.DonationTarget(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, donation.TargetProject, target.Kind)
		require.Equal(t, want, target.Fundable, "project %d", id)
	}
}

func TestDonationTargetDoesNotBumpViews(t *testing.T) {
	project := &Project{ID: 1, OwnerID: 7, Status: StatusFundable}
	repo := newFakeProjectRepo(project)
	svc := NewService(repo)

	_, err := svc.DonationTarget(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), project.ViewsCount)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newFakeProjectRepo(&Project{ID: 1, OwnerID: 7})
	svc := NewService(repo)

	require.ErrorIs(
		t,
		svc.Delete(context.Background(), 8, false, 1),
		core.ErrForbidden,
	)
	require.NoError(t, svc.Delete(context.Background(), 8, true, 1))
}
