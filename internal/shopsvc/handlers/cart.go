package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clickbuy/shop-services/internal/shopsvc/cart"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

// cartView is the cart plus its derived totals.
type cartView struct {
	SessionID string          `json:"session_id"`
	Items     []cart.Item     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

func viewOf(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		SessionID: c.SessionID,
		Items:     items,
		Total:     c.Total(),
		Count:     c.Count(),
	}
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid := r.Header.Get("X-Session-Id")
	if sid == "" {
		h.badRequest(w, "X-Session-Id header is required")
		return "", false
	}
	return sid, true
}

func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: viewOf(h.carts.Get(sid))})
}

type addCartItemRequest struct {
	CardID string `json:"cardId"`
}

// AddCartItemHandler puts one unit of a card into the session cart,
// snapshotting name and price for display.
func (h *Handler) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardID == "" {
		h.badRequest(w, "cardId is required")
		return
	}

	card, err := h.cards.GetCardDetail(r.Context(), req.CardID)
	if err != nil {
		h.serverError(w, "failed to fetch card", err)
		return
	}
	if card == nil {
		h.notFound(w, "card not found")
		return
	}
	if card.Stock < 1 {
		h.badRequest(w, "no stock available for "+card.Name)
		return
	}

	c := h.carts.AddItem(sid, cart.Item{CardID: card.ID, Name: card.Name, Price: card.Price})
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: viewOf(c)})
}

func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	c, removed := h.carts.RemoveItem(sid, chi.URLParam(r, "id"))
	if !removed {
		h.notFound(w, "card is not in the cart")
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: viewOf(c)})
}

func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	h.carts.Clear(sid)
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "cart cleared"})
}
