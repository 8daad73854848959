package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one card held in a cart. Name and Price are display
// snapshots taken when the item was added; checkout re-prices from
// the store regardless.
type Item struct {
	CardID string          `json:"card_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Cart is the session-scoped shopping cart. Total and Count are pure
// functions of the item list.
type Cart struct {
	SessionID string `json:"session_id"`
	Items     []Item `json:"items"`
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

func (c *Cart) Count() int {
	return len(c.Items)
}

// Store keeps carts in memory keyed by session id. Safe for
// concurrent use by the request handlers.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Item)}
}

// Get returns a snapshot of the session's cart. An unknown session
// yields an empty cart.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.carts[sessionID]))
	copy(items, s.carts[sessionID])

	return &Cart{SessionID: sessionID, Items: items}
}

// AddItem appends one unit to the session's cart. Adding the same card
// twice keeps two independent units, matching checkout semantics.
func (s *Store) AddItem(sessionID string, item Item) *Cart {
	s.mu.Lock()
	s.carts[sessionID] = append(s.carts[sessionID], item)
	s.mu.Unlock()

	return s.Get(sessionID)
}

// RemoveItem drops the first unit of the given card from the cart.
// Reports whether anything was removed.
func (s *Store) RemoveItem(sessionID, cardID string) (*Cart, bool) {
	s.mu.Lock()
	items := s.carts[sessionID]
	removed := false
	for i, item := range items {
		if item.CardID == cardID {
			s.carts[sessionID] = append(items[:i:i], items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	return s.Get(sessionID), removed
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}
