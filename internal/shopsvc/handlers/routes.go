package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public storefront routes
		r.Get("/health", h.HealthHandler)

		r.Get("/cards", h.ListCardsHandler)
		r.Get("/cards/{id}", h.GetCardHandler)
		r.Post("/cards/check-stock", h.CheckStockHandler)

		r.Post("/transactions", h.CreateTransactionHandler)
		r.Get("/transactions", h.ListTransactionsHandler)

		r.Get("/cart", h.GetCartHandler)
		r.Post("/cart/items", h.AddCartItemHandler)
		r.Delete("/cart/items/{id}", h.RemoveCartItemHandler)
		r.Delete("/cart", h.ClearCartHandler)

		// admin routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Patch("/admin/cards/{id}/stock", h.UpdateStockHandler)
			r.Get("/admin/dashboard", h.DashboardHandler)
			r.Get("/admin/sales", h.SalesHandler)
			r.Get("/admin/users", h.ListUsersHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
