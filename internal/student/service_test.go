// AngelaMos | 2026
// service_test.go

package student

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/events"
)

type fakeStudentRepo struct {
	byUserID map[int64]*Student
}

func newFakeStudentRepo(students ...*Student) *fakeStudentRepo {
	r := &fakeStudentRepo{byUserID: make(map[int64]*Student)}
	for _, s := range students {
		r.byUserID[s.UserID] = s
	}
	return r
}

func (r *fakeStudentRepo) Create(_ context.Context, student *Student) error {
	r.byUserID[student.UserID] = student
	return nil
}

func (r *fakeStudentRepo) GetByUserID(
	_ context.Context,
	userID int64,
) (*Student, error) {
	s, ok := r.byUserID[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) SetVerification(
	_ context.Context,
	userID, reviewerID int64,
	status string,
	message *string,
) error {
	s, ok := r.byUserID[userID]
	if !ok {
		return core.ErrNotFound
	}
	s.VerificationStatus = status
	s.VerificationMessage = message
	s.VerifiedBy = &reviewerID
	return nil
}

func (r *fakeStudentRepo) ListPending(
	_ context.Context,
	_, _ int,
) ([]PendingStudent, int, error) {
	return nil, 0, nil
}

func (r *fakeStudentRepo) CountPending(_ context.Context) (int, error) {
	return 0, nil
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

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(
	_ context.Context,
	key string,
	_ any,
) error {
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newMockService(
	t *testing.T,
	repo Repository,
	publisher events.Publisher,
) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(
		sqlx.NewDb(db, "sqlmock"),
		repo,
		activity.NewService(nopActivityRepo{}),
		publisher,
	)
	return svc, mock
}

func pendingStudent(userID int64) *Student {
	return &Student{
		ID:                 userID,
		UserID:             userID,
		SchoolName:         "Strathmore",
		SchoolEmail:        "amina@strathmore.edu",
		AdmissionNumber:    "A-1001",
		VerificationStatus: VerificationPending,
	}
}

func userRow(id int64, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "full_name", "phone",
		"role", "status", "email_verified", "last_login", "created_at",
		"updated_at",
	}).AddRow(
		id, "amina", "amina@example.com", "hash", nil, nil,
		role, "ACTIVE", false, nil, now,
		now,
	)
}

func TestIsVerifiedStudent(t *testing.T) {
	verified := pendingStudent(7)
	verified.VerificationStatus = VerificationVerified

	repo := newFakeStudentRepo(verified, pendingStudent(8))
	svc, _ := newMockService(t, repo, events.NopPublisher{})

	ok, err := svc.IsVerifiedStudent(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.IsVerifiedStudent(context.Background(), 8)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsVerifiedStudentNoProfile(t *testing.T) {
	svc, _ := newMockService(t, newFakeStudentRepo(), events.NopPublisher{})

	ok, err := svc.IsVerifiedStudent(context.Background(), 99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReviewApprovePromotesRole(t *testing.T) {
	repo := newFakeStudentRepo(pendingStudent(7))
	publisher := &recordingPublisher{}
	svc, mock := newMockService(t, repo, publisher)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students").
		WithArgs(int64(7), VerificationVerified, nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(userRow(7, "BASE_USER"))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7), "STUDENT").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status, err := svc.Review(context.Background(), 1, VerifyStudentRequest{
		UserID:  7,
		Approve: true,
	})
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Equal(t, []string{events.KeyStudentVerified}, publisher.keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewApproveSkipsRedundantPromotion(t *testing.T) {
	repo := newFakeStudentRepo(pendingStudent(7))
	svc, mock := newMockService(t, repo, events.NopPublisher{})

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students").
		WithArgs(int64(7), VerificationVerified, nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(userRow(7, "STUDENT"))
	mock.ExpectCommit()

	_, err := svc.Review(context.Background(), 1, VerifyStudentRequest{
		UserID:  7,
		Approve: true,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRejectLeavesRoleAlone(t *testing.T) {
	repo := newFakeStudentRepo(pendingStudent(7))
	publisher := &recordingPublisher{}
	svc, mock := newMockService(t, repo, publisher)

	message := "documents unreadable"
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students").
		WithArgs(int64(7), VerificationRejected, message, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status, err := svc.Review(context.Background(), 1, VerifyStudentRequest{
		UserID:  7,
		Approve: false,
		Message: &message,
	})
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Empty(t, publisher.keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAlreadyReviewed(t *testing.T) {
	reviewed := pendingStudent(7)
	reviewed.VerificationStatus = VerificationVerified

	repo := newFakeStudentRepo(reviewed)
	svc, mock := newMockService(t, repo, events.NopPublisher{})

	_, err := svc.Review(context.Background(), 1, VerifyStudentRequest{
		UserID:  7,
		Approve: true,
	})
	require.ErrorIs(t, err, core.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewMissingProfile(t *testing.T) {
	svc, _ := newMockService(t, newFakeStudentRepo(), events.NopPublisher{})

	_, err := svc.Review(context.Background(), 1, VerifyStudentRequest{
		UserID:  404,
		Approve: true,
	})
	require.ErrorIs(t, err, core.ErrNotFound)
}
