package store

import (
	"strings"
	"testing"
)

func TestStockUnavailableErrorEnumeratesItems(t *testing.T) {
	err := &StockUnavailableError{Items: []StockError{
		{CardID: "base1-4", CardName: "Charizard", Reason: ReasonOutOfStock},
		{CardID: "missing-123", Reason: ReasonNotFound},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "no stock available for Charizard") {
		t.Errorf("expected out-of-stock item by name, got %q", msg)
	}
	// items without a known name fall back to the id
	if !strings.Contains(msg, "missing-123") {
		t.Errorf("expected missing id in message, got %q", msg)
	}
}
