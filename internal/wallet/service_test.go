// AngelaMos | 2026
// service_test.go

package wallet

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
)

const testStellarKey = "G" + "A5TLKFRCBFZWGQGB3DPLBWUI6CSMXW5UEDRQC2EOVBVTMSLLYBOMRG5" //nolint:gosec // test fixture, not a credential

type fakeWalletRepo struct {
	byUserID map[int64]*Wallet
	byKey    map[string]*Wallet
	nextID   int64
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		byUserID: make(map[int64]*Wallet),
		byKey:    make(map[string]*Wallet),
	}
}

func (r *fakeWalletRepo) Upsert(_ context.Context, wallet *Wallet) error {
	if existing, ok := r.byUserID[wallet.UserID]; ok {
		delete(r.byKey, existing.PublicKey)
		wallet.ID = existing.ID
	} else {
		r.nextID++
		wallet.ID = r.nextID
	}
	wallet.IsConnected = true
	r.byUserID[wallet.UserID] = wallet
	r.byKey[wallet.PublicKey] = wallet
	return nil
}

func (r *fakeWalletRepo) GetByID(
	_ context.Context,
	id int64,
) (*Wallet, error) {
	for _, w := range r.byUserID {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeWalletRepo) GetByPublicKey(
	_ context.Context,
	publicKey string,
) (*Wallet, error) {
	w, ok := r.byKey[publicKey]
	if !ok {
		return nil, core.ErrNotFound
	}
	return w, nil
}

func (r *fakeWalletRepo) GetByUserID(
	_ context.Context,
	userID int64,
) (*Wallet, error) {
	w, ok := r.byUserID[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return w, nil
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

func newTestService() (*Service, *fakeWalletRepo) {
	repo := newFakeWalletRepo()
	return NewService(repo, activity.NewService(nopActivityRepo{})), repo
}

func TestValidStellarPublicKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want bool
	}{
		{"valid", testStellarKey, true},
		{"empty", "", false},
		{"too short", testStellarKey[:55], false},
		{"too long", testStellarKey + "A", false},
		{"wrong prefix", "S" + testStellarKey[1:], false},
		{"lowercase", strings.ToLower(testStellarKey), false},
		{"bad base32 char", testStellarKey[:55] + "1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ValidStellarPublicKey(tc.key))
		})
	}
}

func TestConnectRejectsInvalidKey(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: "not-a-stellar-key",
	})
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestConnectCreatesWallet(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.NoError(t, err)
	require.Equal(t, testStellarKey, resp.PublicKey)
	require.True(t, resp.IsConnected)

	stored, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, testStellarKey, stored.PublicKey)
}

func TestConnectIsIdempotentForOwner(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.NoError(t, err)

	second, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestConnectForeignKeyConflicts(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.NoError(t, err)

	_, err = svc.Connect(context.Background(), 8, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestGetBalanceOwnerOnly(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Connect(context.Background(), 7, ConnectWalletRequest{
		PublicKey: testStellarKey,
	})
	require.NoError(t, err)

	wallet, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	wallet.XLMBalance = 120.5

	balance, err := svc.GetBalance(context.Background(), 7, false, resp.ID)
	require.NoError(t, err)
	require.Equal(t, 120.5, balance.XLMBalance)

	_, err = svc.GetBalance(context.Background(), 8, false, resp.ID)
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.GetBalance(context.Background(), 8, true, resp.ID)
	require.NoError(t, err)
}
