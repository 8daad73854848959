package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a completed purchase.
type Transaction struct {
	ID             int64           `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	PaymentStatus  string          `json:"payment_status"`
	CardType       string          `json:"card_type,omitempty"`
	LastFourDigits string          `json:"last_four_digits,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`

	Items []TransactionItem `json:"items,omitempty"`
}

// TransactionItem captures a price snapshot for one purchased unit.
// Price is the stored card price at purchase time, not a live join.
type TransactionItem struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"-"`
	CardID        string          `json:"card_id"`
	CardName      string          `json:"card_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}
