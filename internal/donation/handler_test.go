// AngelaMos | 2026
// handler_test.go

package donation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postInitiate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost,
		"/donations/initiate",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	h.Initiate(rec, req)
	return rec
}

func TestInitiateUnfundableTargetRenders403(t *testing.T) {
	source := &fakeTargetSource{target: &TargetInfo{
		Kind:     TargetProject,
		OwnerID:  9,
		Fundable: false,
	}}
	handler := NewHandler(newInitiateService(
		newFakeDonationRepo(), source, nil, nil,
	))

	rec := postInitiate(t, handler, `{
		"project_id": 3,
		"amount": 50,
		"currency": "XLM",
		"payment_method": "STELLAR_XLM"
	}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FUNDABLE")
	require.Contains(t, rec.Body.String(), "target is not fundable")
}

func TestInitiateFundableTargetCreates(t *testing.T) {
	repo := newFakeDonationRepo()
	handler := NewHandler(newInitiateService(
		repo, fundableSource(9, TargetProject), nil, nil,
	))

	rec := postInitiate(t, handler, `{
		"project_id": 3,
		"amount": 50,
		"currency": "XLM",
		"payment_method": "STELLAR_XLM"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
}

func TestInitiateMissingTargetRenders400(t *testing.T) {
	handler := NewHandler(newInitiateService(
		newFakeDonationRepo(), nil, nil, nil,
	))

	rec := postInitiate(t, handler, `{
		"amount": 50,
		"currency": "XLM",
		"payment_method": "STELLAR_XLM"
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "funding target is required")
}
