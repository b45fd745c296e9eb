// AngelaMos | 2026
// handler.go

package wallet

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
) {
	r.Route("/wallets", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/connect", h.Connect)
		r.Get("/{walletID}/balance", h.GetBalance)
	})
}

func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "")
		return
	}

	var req ConnectWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Connect(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidPublicKey) {
			core.BadRequest(w, "invalid stellar public key")
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "wallet already connected to another account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	walletID, ok := core.ParseIDParam(w, r, "walletID")
	if !ok {
		return
	}

	resp, err := h.service.GetBalance(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
		walletID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wallet")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "insufficient permissions")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
