package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/clickbuy/shop-services/internal/shopsvc/cart"
	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/clickbuy/shop-services/internal/shopsvc/service"
	"github.com/clickbuy/shop-services/internal/shopsvc/store"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type fakeCardStore struct {
	cards   map[string]*models.Card
	attacks map[string][]models.Attack
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{
		cards:   make(map[string]*models.Card),
		attacks: make(map[string][]models.Attack),
	}
}

func (f *fakeCardStore) addCard(id, name string, price float64, stock int) {
	f.cards[id] = &models.Card{ID: id, Name: name, Price: decimal.NewFromFloat(price), Stock: stock}
}

func (f *fakeCardStore) ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	var cards []*models.Card
	for _, c := range f.cards {
		if filter.InStock && c.Stock < 1 {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (f *fakeCardStore) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCardStore) GetAttacksByCardID(ctx context.Context, cardID string) ([]models.Attack, error) {
	return f.attacks[cardID], nil
}

func (f *fakeCardStore) CheckStock(ctx context.Context, ids []string) ([]models.StockStatus, error) {
	status := make([]models.StockStatus, 0, len(ids))
	for _, id := range ids {
		c, ok := f.cards[id]
		if !ok {
			status = append(status, models.StockStatus{ID: id})
			continue
		}
		status = append(status, models.StockStatus{ID: id, Name: c.Name, Available: c.Stock > 0, Stock: c.Stock})
	}
	return status, nil
}

func (f *fakeCardStore) SetStock(ctx context.Context, id string, stock int) (*models.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, nil
	}
	c.Stock = stock
	copied := *c
	return &copied, nil
}

func (f *fakeCardStore) StockSummary(ctx context.Context) (*models.StockSummary, error) {
	sum := &models.StockSummary{}
	for _, c := range f.cards {
		sum.TotalCards++
		sum.TotalStock += int64(c.Stock)
		if c.Stock > 0 {
			sum.CardsInStock++
		} else {
			sum.CardsOutOfStock++
		}
	}
	return sum, nil
}

func (f *fakeCardStore) LowStock(ctx context.Context, threshold, limit int) ([]*models.Card, error) {
	var cards []*models.Card
	for _, c := range f.cards {
		if c.Stock > 0 && c.Stock <= threshold {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// fakeTxStore applies the all-or-nothing checkout contract in memory.
type fakeTxStore struct {
	mu           sync.Mutex
	cards        *fakeCardStore
	transactions []*models.Transaction
	nextID       int64
}

func newFakeTxStore(cards *fakeCardStore) *fakeTxStore {
	return &fakeTxStore{cards: cards}
}

func (f *fakeTxStore) Checkout(ctx context.Context, req store.CheckoutRequest) (*store.CheckoutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var stockErrs []store.StockError
	for _, id := range req.CardIDs {
		c, ok := f.cards.cards[id]
		if !ok {
			stockErrs = append(stockErrs, store.StockError{CardID: id, Reason: store.ReasonNotFound})
			continue
		}
		if c.Stock < 1 {
			stockErrs = append(stockErrs, store.StockError{CardID: id, CardName: c.Name, Reason: store.ReasonOutOfStock})
		}
	}
	if len(stockErrs) > 0 {
		return nil, &store.StockUnavailableError{Items: stockErrs}
	}

	scratch := make(map[string]int)
	for id, c := range f.cards.cards {
		scratch[id] = c.Stock
	}

	total := decimal.Zero
	f.nextID++
	trans := &models.Transaction{
		ID:             f.nextID,
		TransactionID:  req.TransactionID,
		PaymentStatus:  "completed",
		CardType:       req.CardType,
		LastFourDigits: req.LastFourDigits,
	}
	remaining := make(map[string]int)

	for _, id := range req.CardIDs {
		c := f.cards.cards[id]
		if scratch[id] < 1 {
			return nil, &store.StockUnavailableError{
				Items: []store.StockError{{CardID: id, CardName: c.Name, Reason: store.ReasonOutOfStock}},
			}
		}
		scratch[id]--
		remaining[id] = scratch[id]
		total = total.Add(c.Price)
		trans.Items = append(trans.Items, models.TransactionItem{
			TransactionID: trans.ID,
			CardID:        id,
			CardName:      c.Name,
			Price:         c.Price,
			Quantity:      1,
		})
	}

	trans.TotalAmount = total
	trans.TaxAmount = total.Mul(req.TaxRate).Round(2)
	trans.GrandTotal = total.Add(trans.TaxAmount)

	for id, left := range scratch {
		f.cards.cards[id].Stock = left
	}
	f.transactions = append(f.transactions, trans)

	return &store.CheckoutResult{Transaction: trans, RemainingStock: remaining}, nil
}

func (f *fakeTxStore) ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.transactions) > limit {
		return f.transactions[len(f.transactions)-limit:], nil
	}
	return f.transactions, nil
}

func (f *fakeTxStore) SalesHistory(ctx context.Context, q store.SalesQuery) ([]*models.Transaction, error) {
	return f.ListRecent(ctx, q.Limit)
}

func (f *fakeTxStore) SalesStats(ctx context.Context) (*models.SalesStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &models.SalesStats{TotalTransactions: int64(len(f.transactions))}
	for _, t := range f.transactions {
		stats.TotalRevenue = stats.TotalRevenue.Add(t.GrandTotal)
	}
	return stats, nil
}

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return f.users, nil
}

var testTaxRate = decimal.NewFromFloat(0.19)

// newTestRouter wires real services over the fakes and registers every
// route without the admin JWT middleware, so handlers are exercised
// directly.
func newTestRouter(cards *fakeCardStore, txs *fakeTxStore, users *fakeUserStore) *chi.Mux {
	if users == nil {
		users = &fakeUserStore{}
	}

	cardService := service.NewCardService(cards, nil, 5)
	checkoutService := service.NewCheckoutService(txs, nil, testTaxRate, 5)
	dashboardService := service.NewDashboardService(cards, txs, 5)
	userService := service.NewUserService(users)

	h := NewHandler(cardService, checkoutService, dashboardService, userService, cart.NewStore())

	r := chi.NewRouter()
	r.Get("/v1/cards", h.ListCardsHandler)
	r.Get("/v1/cards/{id}", h.GetCardHandler)
	r.Post("/v1/cards/check-stock", h.CheckStockHandler)
	r.Post("/v1/transactions", h.CreateTransactionHandler)
	r.Get("/v1/transactions", h.ListTransactionsHandler)
	r.Get("/v1/cart", h.GetCartHandler)
	r.Post("/v1/cart/items", h.AddCartItemHandler)
	r.Delete("/v1/cart/items/{id}", h.RemoveCartItemHandler)
	r.Delete("/v1/cart", h.ClearCartHandler)
	r.Patch("/v1/admin/cards/{id}/stock", h.UpdateStockHandler)
	r.Get("/v1/admin/dashboard", h.DashboardHandler)
	r.Get("/v1/admin/sales", h.SalesHandler)
	r.Get("/v1/admin/users", h.ListUsersHandler)

	return r
}
