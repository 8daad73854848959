package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/clickbuy/shop-services/internal/shopsvc/store"
	"github.com/go-chi/chi"
)

type updateStockRequest struct {
	Stock *int `json:"stock"`
}

// UpdateStockHandler is the admin stock override.
func (h *Handler) UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stock == nil {
		h.badRequest(w, "stock is required")
		return
	}
	if *req.Stock < 0 {
		h.badRequest(w, "stock must not be negative")
		return
	}

	card, err := h.cards.OverrideStock(r.Context(), id, *req.Stock)
	if err != nil {
		h.serverError(w, "failed to update stock", err)
		return
	}
	if card == nil {
		h.notFound(w, "card not found")
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: card})
}

func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboard.Report(r.Context())
	if err != nil {
		h.serverError(w, "failed to build dashboard", err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: report})
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: time.RFC3339, Value: value}
}

// SalesHandler serves the paginated admin sales history, optionally
// bounded by startDate/endDate.
func (h *Handler) SalesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseDate(q.Get("startDate"))
	if err != nil {
		h.badRequest(w, "invalid startDate")
		return
	}
	end, err := parseDate(q.Get("endDate"))
	if err != nil {
		h.badRequest(w, "invalid endDate")
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	sales, err := h.checkout.SalesHistory(r.Context(), store.SalesQuery{
		StartDate: start,
		EndDate:   end,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.serverError(w, "failed to fetch sales", err)
		return
	}
	if sales == nil {
		sales = []*models.Transaction{}
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: sales})
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.serverError(w, "failed to fetch users", err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: users})
}
