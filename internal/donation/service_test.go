// AngelaMos | 2026
// service_test.go

package donation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/events"
)

type fakeTargetSource struct {
	target *TargetInfo
	err    error
}

func (s *fakeTargetSource) DonationTarget(
	_ context.Context,
	_ int64,
) (*TargetInfo, error) {
	return s.target, s.err
}

type fakeDonationRepo struct {
	created   []*Donation
	byID      map[int64]*Donation
	cancelled []int64
}

func newFakeDonationRepo(donations ...*Donation) *fakeDonationRepo {
	r := &fakeDonationRepo{byID: make(map[int64]*Donation)}
	for _, d := range donations {
		r.byID[d.ID] = d
	}
	return r
}

func (r *fakeDonationRepo) Create(_ context.Context, d *Donation) error {
	d.ID = int64(len(r.created) + 1)
	r.created = append(r.created, d)
	r.byID[d.ID] = d
	return nil
}

func (r *fakeDonationRepo) GetByID(
	_ context.Context,
	id int64,
) (*Donation, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return d, nil
}

func (r *fakeDonationRepo) ConfirmPending(
	_ context.Context,
	id int64,
	txHash string,
	_ *string,
) (*Donation, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if d.Status != StatusPending {
		return nil, core.ErrConflict
	}
	d.Status = StatusConfirmed
	d.TxHash = &txHash
	return d, nil
}

func (r *fakeDonationRepo) CancelPending(
	_ context.Context,
	id int64,
) (*Donation, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if d.Status != StatusPending {
		return nil, core.ErrConflict
	}
	d.Status = StatusCancelled
	r.cancelled = append(r.cancelled, id)
	return d, nil
}

func (r *fakeDonationRepo) AddProjectFunding(
	_ context.Context,
	_ int64,
	_ float64,
) error {
	return nil
}

func (r *fakeDonationRepo) AddCampaignFunding(
	_ context.Context,
	_ int64,
	_ float64,
) error {
	return nil
}

func (r *fakeDonationRepo) List(
	_ context.Context,
	_ ListDonationsParams,
) ([]Donation, int, error) {
	out := make([]Donation, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, *d)
	}
	return out, len(out), nil
}

func (r *fakeDonationRepo) Stats(_ context.Context) (*Stats, error) {
	return &Stats{}, nil
}

type nopActivityRepo struct{}

func (nopActivityRepo) Create(_ context.Context, _ *activity.Log) error {
	return nil
}

func (nopActivityRepo) List(
	_ context.Context,
	_ activity.ListParams,
) ([]activity.Log, int, error) {
	return nil, 0, nil
}

func fundableSource(ownerID int64, kind string) *fakeTargetSource {
	return &fakeTargetSource{target: &TargetInfo{
		Kind:     kind,
		OwnerID:  ownerID,
		Fundable: true,
	}}
}

func newInitiateService(
	repo *fakeDonationRepo,
	projects, posts, campaigns TargetSource,
) *Service {
	return NewService(
		nil,
		repo,
		projects,
		posts,
		campaigns,
		activity.NewService(nopActivityRepo{}),
		events.NopPublisher{},
	)
}

func ptr[T any](v T) *T { return &v }

func validRequest() InitiateDonationRequest {
	return InitiateDonationRequest{
		Amount:        50,
		Currency:      "XLM",
		PaymentMethod: MethodStellarXLM,
	}
}

func TestInitiateRequiresTarget(t *testing.T) {
	svc := newInitiateService(newFakeDonationRepo(), nil, nil, nil)

	_, err := svc.Initiate(context.Background(), 1, validRequest())
	require.ErrorIs(t, err, ErrNoTarget)
}

func TestInitiateRejectsMultipleTargets(t *testing.T) {
	svc := newInitiateService(newFakeDonationRepo(), nil, nil, nil)

	req := validRequest()
	req.ProjectID = ptr(int64(1))
	req.CampaignID = ptr(int64(2))

	_, err := svc.Initiate(context.Background(), 1, req)
	require.ErrorIs(t, err, ErrMultipleTargets)
}

func TestInitiateRejectsUnfundableTarget(t *testing.T) {
	projects := &fakeTargetSource{target: &TargetInfo{
		Kind:     TargetProject,
		OwnerID:  9,
		Fundable: false,
	}}
	svc := newInitiateService(newFakeDonationRepo(), projects, nil, nil)

	req := validRequest()
	req.ProjectID = ptr(int64(1))

	_, err := svc.Initiate(context.Background(), 1, req)
	require.ErrorIs(t, err, core.ErrNotFundable)
}

func TestInitiateSetsRecipientFromTarget(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := newInitiateService(repo, fundableSource(9, TargetProject), nil, nil)

	req := validRequest()
	req.ProjectID = ptr(int64(1))

	resp, err := svc.Initiate(context.Background(), 5, req)
	require.NoError(t, err)

	require.Equal(t, StatusPending, resp.Status)
	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].RecipientID)
	require.Equal(t, int64(9), *repo.created[0].RecipientID)
	require.NotNil(t, repo.created[0].DonorID)
	require.Equal(t, int64(5), *repo.created[0].DonorID)
}

func TestInitiateAnonymousHidesDonor(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := newInitiateService(repo, fundableSource(9, TargetProject), nil, nil)

	req := validRequest()
	req.ProjectID = ptr(int64(1))
	req.IsAnonymous = true

	resp, err := svc.Initiate(context.Background(), 5, req)
	require.NoError(t, err)

	require.Nil(t, repo.created[0].DonorID)
	require.Nil(t, resp.DonorID)
}

func TestInitiateUnauthenticatedDonor(t *testing.T) {
	repo := newFakeDonationRepo()
	svc := newInitiateService(repo, nil, fundableSource(9, TargetPost), nil)

	req := validRequest()
	req.PostID = ptr(int64(3))

	_, err := svc.Initiate(context.Background(), 0, req)
	require.NoError(t, err)
	require.Nil(t, repo.created[0].DonorID)
}

func TestCancelByDonor(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:      1,
		DonorID: ptr(int64(5)),
		Status:  StatusPending,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	resp, err := svc.Cancel(context.Background(), 5, false, 1)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, resp.Status)
}

func TestCancelByStrangerForbidden(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:      1,
		DonorID: ptr(int64(5)),
		Status:  StatusPending,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), 6, false, 1)
	require.ErrorIs(t, err, core.ErrForbidden)
	require.Empty(t, repo.cancelled)
}

func TestCancelAnonymousRequiresAdmin(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:          1,
		IsAnonymous: true,
		Status:      StatusPending,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), 5, false, 1)
	require.ErrorIs(t, err, core.ErrForbidden)

	resp, err := svc.Cancel(context.Background(), 5, true, 1)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, resp.Status)
}

func TestCancelResolvedConflicts(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:      1,
		DonorID: ptr(int64(5)),
		Status:  StatusConfirmed,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), 5, false, 1)
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestGetHidesPrivateDonations(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:          1,
		DonorID:     ptr(int64(5)),
		RecipientID: ptr(int64(9)),
		Status:      StatusPending,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	// Donor, recipient, and admin can see a pending donation.
	for _, id := range []int64{5, 9} {
		_, err := svc.Get(context.Background(), id, false, 1)
		require.NoError(t, err)
	}
	_, err := svc.Get(context.Background(), 0, true, 1)
	require.NoError(t, err)

	// Everyone else reads it as absent.
	_, err = svc.Get(context.Background(), 6, false, 1)
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = svc.Get(context.Background(), 0, false, 1)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetConfirmedIsPublic(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:     1,
		Status: StatusConfirmed,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), 0, false, 1)
	require.NoError(t, err)
}

func TestListFiltersInvisibleRows(t *testing.T) {
	repo := newFakeDonationRepo(
		&Donation{ID: 1, Status: StatusConfirmed},
		&Donation{ID: 2, DonorID: ptr(int64(5)), Status: StatusPending},
		&Donation{ID: 3, DonorID: ptr(int64(6)), Status: StatusPending},
	)
	svc := newInitiateService(repo, nil, nil, nil)

	visible, total, err := svc.List(
		context.Background(),
		5,
		false,
		ListDonationsParams{},
	)
	require.NoError(t, err)

	// The total counts all matching rows; visibility trims the page after.
	require.Equal(t, 3, total)
	require.Len(t, visible, 2)

	all, _, err := svc.List(
		context.Background(),
		0,
		true,
		ListDonationsParams{},
	)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestAnonymousDonorHiddenInResponse(t *testing.T) {
	repo := newFakeDonationRepo(&Donation{
		ID:          1,
		DonorID:     ptr(int64(5)),
		IsAnonymous: true,
		Status:      StatusConfirmed,
	})
	svc := newInitiateService(repo, nil, nil, nil)

	resp, err := svc.Get(context.Background(), 0, false, 1)
	require.NoError(t, err)
	require.Nil(t, resp.DonorID)
}
