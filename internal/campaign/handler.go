// AngelaMos | 2026
// handler.go

package campaign

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

// RegisterRoutes: campaigns are platform-run, so all writes are admin.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{campaignID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{campaignID}", h.Update)
			r.Delete("/{campaignID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	creatorID := middleware.GetUserID(r.Context())

	resp, err := h.service.Create(r.Context(), creatorID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := core.ParseIDParam(w, r, "campaignID")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "campaign")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := core.ParseIDParam(w, r, "campaignID")
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Update(r.Context(), campaignID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "campaign")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := core.ParseIDParam(w, r, "campaignID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), campaignID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "campaign")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListCampaignsParams{
		Page:     core.ParseIntQuery(r, "page", 1),
		PageSize: core.ParseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	campaigns, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, campaigns, params.Page, params.PageSize, total)
}
