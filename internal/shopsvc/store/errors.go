package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTransaction is returned when a transaction_id was
// already processed (unique constraint on transactions.transaction_id).
var ErrDuplicateTransaction = errors.New("transaction already processed")

// Per-item failure reasons reported by checkout.
const (
	ReasonNotFound   = "not found"
	ReasonOutOfStock = "no stock available"
)

// StockError describes why one requested item could not be purchased.
type StockError struct {
	CardID   string `json:"card_id"`
	CardName string `json:"card_name,omitempty"`
	Reason   string `json:"reason"`
}

func (e StockError) String() string {
	name := e.CardName
	if name == "" {
		name = e.CardID
	}
	return fmt.Sprintf("%s for %s", e.Reason, name)
}

// StockUnavailableError rejects a whole checkout. No partial effects
// remain in the store when it is returned.
type StockUnavailableError struct {
	Items []StockError
}

func (e *StockUnavailableError) Error() string {
	msgs := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		msgs = append(msgs, it.String())
	}
	return "stock unavailable: " + strings.Join(msgs, "; ")
}
