package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/go-chi/chi"
)

// ListCardsHandler serves the catalog with optional filters:
// type, rarity, set, name, inStock.
func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CardFilter{
		Type:    q.Get("type"),
		Rarity:  q.Get("rarity"),
		Set:     q.Get("set"),
		Name:    q.Get("name"),
		InStock: q.Get("inStock") == "true",
	}

	cards, err := h.cards.ListCards(r.Context(), filter)
	if err != nil {
		h.serverError(w, "failed to fetch cards", err)
		return
	}
	if cards == nil {
		cards = []*models.Card{}
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: cards})
}

// GetCardHandler serves one card with its attack list.
func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.cards.GetCardDetail(r.Context(), id)
	if err != nil {
		h.serverError(w, "failed to fetch card", err)
		return
	}
	if card == nil {
		h.notFound(w, "card not found")
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: card})
}

type checkStockRequest struct {
	CardIDs []string `json:"cardIds"`
}

// CheckStockHandler reports availability for a list of card ids.
func (h *Handler) CheckStockHandler(w http.ResponseWriter, r *http.Request) {
	var req checkStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if len(req.CardIDs) == 0 {
		h.badRequest(w, "cardIds is required")
		return
	}

	status, err := h.cards.CheckStock(r.Context(), req.CardIDs)
	if err != nil {
		h.serverError(w, "failed to check stock", err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: status})
}
