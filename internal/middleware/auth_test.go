// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlift/backend/internal/core"
)

type fakeVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (v *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return v.claims, v.err
}

type fakeStudentChecker struct {
	verified bool
	err      error
}

func (c *fakeStudentChecker) IsVerifiedStudent(
	_ context.Context,
	_ int64,
) (bool, error) {
	return c.verified, c.err
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(
	t *testing.T,
	handler http.Handler,
	token string,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler := Authenticator(&fakeVerifier{})(echoIdentity())

	rec := doRequest(t, handler, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenInvalid}
	handler := Authenticator(verifier)(echoIdentity())

	rec := doRequest(t, handler, "bad-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthenticatorInactiveAccount(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrUserInactive}
	handler := Authenticator(verifier)(echoIdentity())

	rec := doRequest(t, handler, "token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "ACCOUNT_INACTIVE")
}

func TestAuthenticatorAttachesIdentity(t *testing.T) {
	verifier := &fakeVerifier{claims: &AccessTokenClaims{
		UserID: 7,
		Role:   "STUDENT",
		Status: "ACTIVE",
	}}

	var gotID int64
	var gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetUserRole(r.Context())
	})

	rec := doRequest(t, Authenticator(verifier)(inner), "token")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), gotID)
	require.Equal(t, "STUDENT", gotRole)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenInvalid}

	var gotID int64
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
	})

	rec := doRequest(t, OptionalAuth(verifier)(inner), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(0), gotID)
}

func TestOptionalAuthBadTokenStillAnonymous(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenInvalid}

	rec := doRequest(t, OptionalAuth(verifier)(echoIdentity()), "garbage")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthRejectsInactiveAccount(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrUserInactive}

	rec := doRequest(t, OptionalAuth(verifier)(echoIdentity()), "token")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	adminVerifier := &fakeVerifier{claims: &AccessTokenClaims{
		UserID: 1,
		Role:   RoleAdmin,
		Status: "ACTIVE",
	}}
	userVerifier := &fakeVerifier{claims: &AccessTokenClaims{
		UserID: 2,
		Role:   "BASE_USER",
		Status: "ACTIVE",
	}}

	adminChain := Authenticator(adminVerifier)(RequireAdmin(echoIdentity()))
	userChain := Authenticator(userVerifier)(RequireAdmin(echoIdentity()))

	require.Equal(t, http.StatusOK, doRequest(t, adminChain, "token").Code)
	require.Equal(
		t,
		http.StatusForbidden,
		doRequest(t, userChain, "token").Code,
	)
}

func TestRequireVerifiedStudent(t *testing.T) {
	verifier := &fakeVerifier{claims: &AccessTokenClaims{
		UserID: 7,
		Role:   "STUDENT",
		Status: "ACTIVE",
	}}

	verified := Authenticator(verifier)(
		RequireVerifiedStudent(&fakeStudentChecker{verified: true})(
			echoIdentity(),
		),
	)
	unverified := Authenticator(verifier)(
		RequireVerifiedStudent(&fakeStudentChecker{verified: false})(
			echoIdentity(),
		),
	)

	require.Equal(t, http.StatusOK, doRequest(t, verified, "token").Code)
	require.Equal(
		t,
		http.StatusForbidden,
		doRequest(t, unverified, "token").Code,
	)
}

func TestRequireVerifiedStudentWithoutIdentity(t *testing.T) {
	handler := RequireVerifiedStudent(&fakeStudentChecker{verified: true})(
		echoIdentity(),
	)

	rec := doRequest(t, handler, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"case insensitive", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			require.Equal(t, tc.want, ExtractToken(req))
		})
	}
}
