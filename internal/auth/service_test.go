// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
)

type fakeUserProvider struct {
	users            map[string]*UserInfo
	lastLoginTouched []int64
	passwordUpdates  map[int64]string
	createErr        error
}

func newFakeUserProvider(users ...*UserInfo) *fakeUserProvider {
	p := &fakeUserProvider{
		users:           make(map[string]*UserInfo),
		passwordUpdates: make(map[int64]string),
	}
	for _, u := range users {
		p.users[u.Username] = u
	}
	return p
}

func (p *fakeUserProvider) GetByID(
	_ context.Context,
	id int64,
) (*UserInfo, error) {
	for _, u := range p.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) GetByUsername(
	_ context.Context,
	username string,
) (*UserInfo, error) {
	u, ok := p.users[username]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (p *fakeUserProvider) Create(
	_ context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	u := &UserInfo{
		ID:           int64(len(p.users) + 1),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FullName:     params.FullName,
		Phone:        params.Phone,
		Role:         "BASE_USER",
		Status:       "ACTIVE",
		CreatedAt:    time.Now(),
	}
	p.users[u.Username] = u
	return u, nil
}

func (p *fakeUserProvider) UpdateProfile(
	_ context.Context,
	userID int64,
	fullName, phone *string,
) (*UserInfo, error) {
	for _, u := range p.users {
		if u.ID == userID {
			if fullName != nil {
				u.FullName = fullName
			}
			if phone != nil {
				u.Phone = phone
			}
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID int64,
	passwordHash string,
) error {
	p.passwordUpdates[userID] = passwordHash
	return nil
}

func (p *fakeUserProvider) TouchLastLogin(
	_ context.Context,
	userID int64,
) error {
	p.lastLoginTouched = append(p.lastLoginTouched, userID)
	return nil
}

type fakeTokenRepo struct {
	tokens          map[string]*RefreshToken
	revokedFamilies []string
	revokedUsers    []int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *RefreshToken) error {
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepo) FindByHash(
	_ context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeTokenRepo) FindByID(
	_ context.Context,
	id string,
) (*RefreshToken, error) {
	t, ok := r.tokens[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	if t, ok := r.tokens[id]; ok {
		t.MarkAsUsed(replacedByID)
	}
	return nil
}

func (r *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	t, ok := r.tokens[id]
	if !ok {
		return core.ErrNotFound
	}
	t.Revoke()
	return nil
}

func (r *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	r.revokedFamilies = append(r.revokedFamilies, familyID)
	for _, t := range r.tokens {
		if t.FamilyID == familyID {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID int64,
) error {
	r.revokedUsers = append(r.revokedUsers, userID)
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoke()
		}
	}
	return nil
}

func (r *fakeTokenRepo) GetActiveSessionsForUser(
	_ context.Context,
	userID int64,
) ([]RefreshToken, error) {
	var out []RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newTestService(
	t *testing.T,
	provider *fakeUserProvider,
	repo *fakeTokenRepo,
) *Service {
	t.Helper()
	jwt := newTestJWTManager(t, 15*time.Minute)
	return NewService(repo, jwt, provider, nil, nil)
}

func activeUser(t *testing.T, id int64, username, password string) *UserInfo {
	t.Helper()
	hash, err := core.HashPassword(password)
	require.NoError(t, err)
	return &UserInfo{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         "BASE_USER",
		Status:       "ACTIVE",
		CreatedAt:    time.Now(),
	}
}

func TestLoginSuccess(t *testing.T) {
	provider := newFakeUserProvider(activeUser(t, 1, "amina", "s3cret-pass"))
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Tokens.AccessToken)
	require.NotEmpty(t, resp.Tokens.RefreshToken)
	require.Equal(t, "bearer", resp.Tokens.TokenType)
	require.Equal(t, int64(1), resp.User.ID)

	require.Equal(t, []int64{1}, provider.lastLoginTouched)
	require.Len(t, repo.tokens, 1)
	for _, stored := range repo.tokens {
		require.Equal(t, int64(1), stored.UserID)
		require.Equal(t, "test-agent", stored.UserAgent)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	provider := newFakeUserProvider(activeUser(t, 1, "amina", "s3cret-pass"))
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "wrong",
	}, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Empty(t, provider.lastLoginTouched)
	require.Empty(t, repo.tokens)
}

func TestLoginUnknownUser(t *testing.T) {
	provider := newFakeUserProvider()
	svc := newTestService(t, provider, newFakeTokenRepo())

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	user.Status = "SUSPENDED"
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "", "")
	require.ErrorIs(t, err, core.ErrUserInactive)
	require.Empty(t, provider.lastLoginTouched)
}

func TestSignupDuplicate(t *testing.T) {
	provider := newFakeUserProvider()
	provider.createErr = core.ErrDuplicateKey
	svc := newTestService(t, provider, newFakeTokenRepo())

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	}, "", "")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRefreshRotatesToken(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	first, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "", "")
	require.NoError(t, err)

	second, err := svc.Refresh(
		context.Background(),
		first.Tokens.RefreshToken,
		"", "",
	)
	require.NoError(t, err)
	require.NotEqual(
		t,
		first.Tokens.RefreshToken,
		second.Tokens.RefreshToken,
	)

	// The original token is spent after rotation.
	firstHash := core.HashToken(first.Tokens.RefreshToken)
	stored, err := repo.FindByHash(context.Background(), firstHash)
	require.NoError(t, err)
	require.True(t, stored.IsUsed)
}

func TestRefreshReuseRevokesFamily(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	first, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), first.Tokens.RefreshToken, "", "")
	require.NoError(t, err)

	// Presenting the spent token again is a reuse signal: the whole
	// family goes down with it.
	_, err = svc.Refresh(context.Background(), first.Tokens.RefreshToken, "", "")
	require.ErrorIs(t, err, ErrTokenReuse)
	require.NotEmpty(t, repo.revokedFamilies)
}

func TestRefreshInactiveUser(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "", "")
	require.NoError(t, err)

	user.Status = "SUSPENDED"

	_, err = svc.Refresh(context.Background(), resp.Tokens.RefreshToken, "", "")
	require.ErrorIs(t, err, core.ErrUserInactive)
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	owner := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(owner)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Username: "amina",
		Password: "s3cret-pass",
	}, "", "")
	require.NoError(t, err)

	err = svc.Logout(context.Background(), resp.Tokens.RefreshToken, 999)
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	err := svc.ChangePassword(context.Background(), 1, "wrong", "new-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Empty(t, provider.passwordUpdates)
	require.Empty(t, repo.revokedUsers)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	user := activeUser(t, 1, "amina", "s3cret-pass")
	provider := newFakeUserProvider(user)
	repo := newFakeTokenRepo()
	svc := newTestService(t, provider, repo)

	err := svc.ChangePassword(
		context.Background(),
		1,
		"s3cret-pass",
		"new-pass-123",
	)
	require.NoError(t, err)
	require.Contains(t, provider.passwordUpdates, int64(1))
	require.Equal(t, []int64{1}, repo.revokedUsers)
}
