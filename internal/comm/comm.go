package comm

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// NATS topics shared between shopsvc and socketsvc.
const (
	TopicSales = "shop.sales"
	TopicStock = "shop.stock"
)

// WSMessage is the envelope relayed to websocket dashboard clients.
type WSMessage struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socket_id,omitempty"`
}

// SaleEvent is published on TopicSales after a checkout commits.
type SaleEvent struct {
	TransactionID string          `json:"transaction_id"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Items         []SaleItem      `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

type SaleItem struct {
	CardID   string          `json:"card_id"`
	CardName string          `json:"card_name"`
	Price    decimal.Decimal `json:"price"`
}

// StockAlert is published on TopicStock when a card's stock
// falls to or below the configured threshold.
type StockAlert struct {
	CardID   string `json:"card_id"`
	CardName string `json:"card_name"`
	Stock    int    `json:"stock"`
}
