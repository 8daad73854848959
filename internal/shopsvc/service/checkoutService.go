package service

import (
	"context"
	"fmt"

	"github.com/clickbuy/shop-services/internal/comm"
	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/clickbuy/shop-services/internal/shopsvc/store"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// TransactionStore is the checkout persistence surface.
type TransactionStore interface {
	Checkout(ctx context.Context, req store.CheckoutRequest) (*store.CheckoutResult, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error)
	SalesHistory(ctx context.Context, q store.SalesQuery) ([]*models.Transaction, error)
	SalesStats(ctx context.Context) (*models.SalesStats, error)
}

// Publisher pushes checkout events to the message broker.
type Publisher interface {
	PublishSale(event comm.SaleEvent) error
	PublishStockAlert(alert comm.StockAlert) error
}

// ValidationError marks a malformed purchase request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PurchaseItem is one unit of the proposed purchase. Name and Price are
// the client's display snapshot, the authoritative values come from the
// store at commit time.
type PurchaseItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PurchaseRequest is the checkout payload as submitted by the storefront.
type PurchaseRequest struct {
	TransactionID  string          `json:"transactionId"`
	Items          []PurchaseItem  `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	CardType       string          `json:"cardType"`
	LastFourDigits string          `json:"lastFourDigits"`
}

type CheckoutService struct {
	store             TransactionStore
	publisher         Publisher
	taxRate           decimal.Decimal
	lowStockThreshold int
}

func NewCheckoutService(store TransactionStore, publisher Publisher, taxRate decimal.Decimal, lowStockThreshold int) *CheckoutService {
	return &CheckoutService{
		store:             store,
		publisher:         publisher,
		taxRate:           taxRate,
		lowStockThreshold: lowStockThreshold,
	}
}

func validatePurchase(req *PurchaseRequest) error {
	if req.TransactionID == "" {
		return &ValidationError{Field: "transactionId", Message: "is required"}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for _, item := range req.Items {
		if item.ID == "" {
			return &ValidationError{Field: "items", Message: "every item needs a card id"}
		}
	}
	if req.LastFourDigits != "" && len(req.LastFourDigits) != 4 {
		return &ValidationError{Field: "lastFourDigits", Message: "must be exactly 4 digits"}
	}
	return nil
}

// Checkout validates the request and commits the purchase. Duplicate
// card ids buy independent single units. The stored card price is used
// for every line item and for the totals; when the client-submitted
// grand total disagrees the difference is logged but the stored prices
// win.
func (s *CheckoutService) Checkout(ctx context.Context, req *PurchaseRequest) (*models.Transaction, error) {
	if err := validatePurchase(req); err != nil {
		return nil, err
	}

	cardIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		cardIDs = append(cardIDs, item.ID)
	}

	result, err := s.store.Checkout(ctx, store.CheckoutRequest{
		TransactionID:  req.TransactionID,
		CardIDs:        cardIDs,
		CardType:       req.CardType,
		LastFourDigits: req.LastFourDigits,
		TaxRate:        s.taxRate,
	})
	if err != nil {
		return nil, err
	}

	trans := result.Transaction
	if !trans.GrandTotal.Equal(req.GrandTotal) {
		log.Warnf("checkout %s: client grand total %s disagrees with stored prices %s",
			trans.TransactionID, req.GrandTotal.StringFixed(2), trans.GrandTotal.StringFixed(2))
	}

	s.publishEvents(trans, result.RemainingStock)

	return trans, nil
}

func (s *CheckoutService) publishEvents(trans *models.Transaction, remaining map[string]int) {
	if s.publisher == nil {
		return
	}

	event := comm.SaleEvent{
		TransactionID: trans.TransactionID,
		GrandTotal:    trans.GrandTotal,
		CreatedAt:     trans.CreatedAt,
	}
	for _, item := range trans.Items {
		event.Items = append(event.Items, comm.SaleItem{
			CardID:   item.CardID,
			CardName: item.CardName,
			Price:    item.Price,
		})
	}
	if err := s.publisher.PublishSale(event); err != nil {
		log.Errorf("failed to publish sale event %s: %v", trans.TransactionID, err)
	}

	alerted := make(map[string]bool, len(remaining))
	for _, item := range trans.Items {
		left, ok := remaining[item.CardID]
		if !ok || left > s.lowStockThreshold || alerted[item.CardID] {
			continue
		}
		alerted[item.CardID] = true
		alert := comm.StockAlert{CardID: item.CardID, CardName: item.CardName, Stock: left}
		if err := s.publisher.PublishStockAlert(alert); err != nil {
			log.Errorf("failed to publish stock alert for card %s: %v", item.CardID, err)
		}
	}
}

// ListRecent returns the latest transactions with nested items.
func (s *CheckoutService) ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	return s.store.ListRecent(ctx, limit)
}

// SalesHistory serves the paginated admin sales view.
func (s *CheckoutService) SalesHistory(ctx context.Context, q store.SalesQuery) ([]*models.Transaction, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.store.SalesHistory(ctx, q)
}
