// AngelaMos | 2026
// handler.go

package card

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/cardfolio/internal/core"
	"github.com/carterperez-dev/cardfolio/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	writeLimiter func(http.Handler) http.Handler,
) {
	r.Route("/cards", func(r chi.Router) {
		// Browsing the catalog needs no account.
		r.Get("/", h.ListCards)
		r.Get("/{cardID}", h.GetCard)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/my-cards", h.ListMyCards)

			r.Group(func(r chi.Router) {
				r.Use(writeLimiter)

				r.Post("/", h.CreateCard)
				r.Put("/{cardID}", h.UpdateCard)
				r.Delete("/{cardID}", h.DeleteCard)
				r.Patch("/{cardID}/like", h.ToggleLike)
				r.Patch("/{cardID}/biz-number", h.UpdateBizNumber)
			})
		})
	})
}

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	params := ListCardsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	cards, total, err := h.service.ListCards(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCardResponseList(cards),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListMyCards(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	params := ListCardsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	cards, total, err := h.service.ListMyCards(r.Context(), actor, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCardResponseList(cards),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	card, err := h.service.GetCard(r.Context(), cardID)
	if err != nil {
		writeCardError(w, err)
		return
	}

	core.OK(w, ToCardResponse(card))
}

func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	card, err := h.service.CreateCard(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "business account required")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCardResponse(card))
}

func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}
	cardID := chi.URLParam(r, "cardID")

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	card, err := h.service.UpdateCard(r.Context(), actor, cardID, req)
	if err != nil {
		writeCardError(w, err)
		return
	}

	core.OK(w, ToCardResponse(card))
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}
	cardID := chi.URLParam(r, "cardID")

	if err := h.service.DeleteCard(r.Context(), actor, cardID); err != nil {
		writeCardError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}
	cardID := chi.URLParam(r, "cardID")

	resp, err := h.service.ToggleLike(r.Context(), actor, cardID)
	if err != nil {
		writeCardError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateBizNumber(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}
	cardID := chi.URLParam(r, "cardID")

	var req UpdateBizNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	card, err := h.service.UpdateBizNumber(
		r.Context(),
		actor,
		cardID,
		req.BizNumber,
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("biz number"))
			return
		}
		writeCardError(w, err)
		return
	}

	core.OK(w, ToCardResponse(card))
}

func writeCardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "insufficient permissions")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "card")
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
