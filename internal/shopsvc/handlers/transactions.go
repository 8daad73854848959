package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/clickbuy/shop-services/internal/shopsvc/service"
	"github.com/clickbuy/shop-services/internal/shopsvc/store"
)

// CreateTransactionHandler commits a purchase. The whole request either
// succeeds, or fails with a structured per-item stock error list and no
// effects on the store.
func (h *Handler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req service.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	trans, err := h.checkout.Checkout(r.Context(), &req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.badRequest(w, vErr.Error())
			return
		}

		var stockErr *store.StockUnavailableError
		if errors.As(err, &stockErr) {
			h.CreateResponse(w, Response{
				Code:  http.StatusBadRequest,
				Data:  stockErr.Items,
				Error: stockErr.Error(),
			})
			return
		}

		if errors.Is(err, store.ErrDuplicateTransaction) {
			h.badRequest(w, store.ErrDuplicateTransaction.Error())
			return
		}

		h.serverError(w, "failed to process transaction", err)
		return
	}

	h.CreateResponse(w, Response{
		Code:    http.StatusOK,
		Message: "purchase processed successfully",
		Data:    trans,
	})
}

// ListTransactionsHandler serves the most recent 100 transactions
// with their nested item lists.
func (h *Handler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.checkout.ListRecent(r.Context(), 100)
	if err != nil {
		h.serverError(w, "failed to fetch transactions", err)
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: transactions})
}
