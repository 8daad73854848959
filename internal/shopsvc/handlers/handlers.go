package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/clickbuy/shop-services/internal/shopsvc/cart"
	"github.com/clickbuy/shop-services/internal/shopsvc/service"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	cards     *service.CardService
	checkout  *service.CheckoutService
	dashboard *service.DashboardService
	users     *service.UserService
	carts     *cart.Store
}

func NewHandler(cards *service.CardService, checkout *service.CheckoutService,
	dashboard *service.DashboardService, users *service.UserService, carts *cart.Store) *Handler {
	return &Handler{
		cards:     cards,
		checkout:  checkout,
		dashboard: dashboard,
		users:     users,
		carts:     carts,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// serverError logs the raw error and hides it from the client.
func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	log.Errorf("%s: %v", msg, err)
	h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: msg})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: msg})
}

func (h *Handler) notFound(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: msg})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "shop service is running at port " + os.Getenv("SHOP_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	h.CreateResponse(w, rsp)
}
