// AngelaMos | 2026
// repository_test.go

package donation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func donationRow(id int64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "donor_id", "recipient_id", "project_id", "post_id",
		"campaign_id", "amount", "currency", "payment_method", "message",
		"is_anonymous", "tx_hash", "status", "confirmed_at",
		"provider_transaction_id", "created_at", "updated_at",
	}).AddRow(
		id, nil, int64(9), int64(3), nil,
		nil, 50.0, "XLM", MethodStellarXLM, nil,
		false, "abc123", status, now,
		nil, now, now,
	)
}

func TestConfirmPendingWinsRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(1), "abc123", nil).
		WillReturnRows(donationRow(1, StatusConfirmed))

	donation, err := repo.ConfirmPending(context.Background(), 1, "abc123", nil)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, donation.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPendingAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	// The guarded update matches nothing, but the row exists: the donation
	// was already resolved.
	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(1), "abc123", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.ConfirmPending(context.Background(), 1, "abc123", nil)
	require.ErrorIs(t, err, core.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPendingMissingDonation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(404), "abc123", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.ConfirmPending(context.Background(), 404, "abc123", nil)
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPendingAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.CancelPending(context.Background(), 1)
	require.ErrorIs(t, err, core.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyCommitsConfirmAndFundingTogether(t *testing.T) {
	db, mock := newMockDB(t)

	svc := newInitiateService(newFakeDonationRepo(), nil, nil, nil)
	svc.db = db
	svc.repo = NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(1), "abc123", nil).
		WillReturnRows(donationRow(1, StatusConfirmed))
	mock.ExpectExec("UPDATE projects").
		WithArgs(int64(3), 50.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Verify(context.Background(), VerifyDonationRequest{
		DonationID: 1,
		TxHash:     "abc123",
	})
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, resp.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyRollsBackOnFundingFailure(t *testing.T) {
	db, mock := newMockDB(t)

	svc := newInitiateService(newFakeDonationRepo(), nil, nil, nil)
	svc.db = db
	svc.repo = NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE donations").
		WithArgs(int64(1), "abc123", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Verify(context.Background(), VerifyDonationRequest{
		DonationID: 1,
		TxHash:     "abc123",
	})
	require.ErrorIs(t, err, core.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
