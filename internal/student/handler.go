// AngelaMos | 2026
// handler.go

package student

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/students", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{userID}/status", h.GetStatus)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/pending-verification", h.ListPending)
			r.Post("/verify", h.Verify)
		})
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	targetID, ok := core.ParseIDParam(w, r, "userID")
	if !ok {
		return
	}

	requesterID := middleware.GetUserID(r.Context())
	if requesterID != targetID && !middleware.IsAdmin(r.Context()) {
		core.Forbidden(w, "insufficient permissions")
		return
	}

	status, err := h.service.GetStatus(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "student profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	page := core.ParseIntQuery(r, "page", 1)
	pageSize := core.ParseIntQuery(r, "page_size", 20)

	pending, total, err := h.service.ListPending(r.Context(), page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, pending, page, pageSize, total)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	reviewerID := middleware.GetUserID(r.Context())

	status, err := h.service.Review(r.Context(), reviewerID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "student profile")
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "student verification already reviewed")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}
