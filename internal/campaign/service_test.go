// AngelaMos | 2026
// service_test.go

package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
)

type fakeCampaignRepo struct {
	byID    map[int64]*Campaign
	created []*Campaign
}

func newFakeCampaignRepo(campaigns ...*Campaign) *fakeCampaignRepo {
	r := &fakeCampaignRepo{byID: make(map[int64]*Campaign)}
	for _, c := range campaigns {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *Campaign) error {
	campaign.ID = int64(len(r.created) + 1)
	r.created = append(r.created, campaign)
	r.byID[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) GetByID(
	_ context.Context,
	id int64,
) (*Campaign, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (r *fakeCampaignRepo) GetByIDAndBumpViews(
	_ context.Context,
	id int64,
) (*Campaign, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	c.ViewsCount++
	return c, nil
}

func (r *fakeCampaignRepo) Update(_ context.Context, campaign *Campaign) error {
	r.byID[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeCampaignRepo) List(
	_ context.Context,
	_ ListCampaignsParams,
) ([]Campaign, int, error) {
	out := make([]Campaign, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func TestCreateDefaultsToDraft(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), 1, CreateCampaignRequest{
		Name:        "Hackathon reward pool",
		Description: "Prizes for the annual hackathon.",
		RewardPool:  5000,
		Currency:    "USDC",
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, resp.Status)
	require.Equal(t, int64(1), resp.CreatedBy)
}

func TestOnlyActiveCampaignsAcceptDonations(t *testing.T) {
	repo := newFakeCampaignRepo(
		&Campaign{ID: 1, CreatedBy: 2, Status: StatusActive},
		&Campaign{ID: 2, CreatedBy: 2, Status: StatusDraft},
		&Campaign{ID: 3, CreatedBy: 2, Status: StatusPaused},
		&Campaign{ID: 4, CreatedBy: 2, Status: StatusCompleted},
		&Campaign{ID: 5, CreatedBy: 2, Status: StatusCancelled},
	)
	svc := NewService(repo)

	for id := int64(1); id <= 5; id++ {
		target, err := svc.DonationTarget(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, donation.TargetCampaign, target.Kind)
		require.Equal(t, int64(2), target.OwnerID)
		require.Equal(t, id == 1, target.Fundable, "campaign %d", id)
	}
}

func TestUpdateStatusTransition(t *testing.T) {
	repo := newFakeCampaignRepo(&Campaign{
		ID:     1,
		Status: StatusDraft,
	})
	svc := NewService(repo)

	status := StatusActive
	resp, err := svc.Update(context.Background(), 1, UpdateCampaignRequest{
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, resp.Status)

	target, err := svc.DonationTarget(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, target.Fundable)
}
