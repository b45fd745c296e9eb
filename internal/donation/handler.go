// AngelaMos | 2026
// handler.go

package donation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the donation surface. Listing and initiating work
// with or without a bearer token, so the whole subtree sits behind
// optional auth.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/donations", func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/", h.List)
		r.Get("/stats", h.Stats)
		r.Post("/initiate", h.Initiate)
		r.Post("/verify", h.Verify)
		r.Get("/{donationID}", h.Get)
		r.Post("/{donationID}/cancel", h.Cancel)
	})
}

func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req InitiateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	donorID := middleware.GetUserID(r.Context())

	resp, err := h.service.Initiate(r.Context(), donorID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Verify(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "transaction hash already used")
			return
		}
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	donationID, ok := core.ParseIDParam(w, r, "donationID")
	if !ok {
		return
	}

	requesterID := middleware.GetUserID(r.Context())
	if requesterID == 0 {
		core.Unauthorized(w, "")
		return
	}

	resp, err := h.service.Cancel(
		r.Context(),
		requesterID,
		middleware.IsAdmin(r.Context()),
		donationID,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	donationID, ok := core.ParseIDParam(w, r, "donationID")
	if !ok {
		return
	}

	resp, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
		donationID,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListDonationsParams{
		Page:       core.ParseIntQuery(r, "page", 1),
		PageSize:   core.ParseIntQuery(r, "page_size", 20),
		Status:     r.URL.Query().Get("status"),
		ProjectID:  core.ParseInt64Query(r, "project_id"),
		PostID:     core.ParseInt64Query(r, "post_id"),
		CampaignID: core.ParseInt64Query(r, "campaign_id"),
	}

	donations, total, err := h.service.List(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
		params,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, donations, params.Page, params.PageSize, total)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoTarget):
		core.BadRequest(w, "a funding target is required")
	case errors.Is(err, ErrMultipleTargets):
		core.BadRequest(w, "exactly one funding target must be provided")
	case errors.Is(err, core.ErrNotFundable):
		core.JSONError(w, core.NotFundableError("target is not fundable"))
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "insufficient permissions")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "donation target")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, "donation already resolved")
	default:
		core.InternalServerError(w, err)
	}
}

