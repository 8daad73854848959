package models

import "github.com/shopspring/decimal"

// StockSummary aggregates the cards table for the admin dashboard.
type StockSummary struct {
	TotalCards      int64 `json:"total_cards"`
	TotalStock      int64 `json:"total_stock"`
	CardsInStock    int64 `json:"cards_in_stock"`
	CardsOutOfStock int64 `json:"cards_out_of_stock"`
}

// SalesStats aggregates the transactions table.
type SalesStats struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

// DashboardReport is the full admin dashboard payload.
type DashboardReport struct {
	Stock       StockSummary   `json:"stock"`
	Sales       SalesStats     `json:"sales"`
	RecentSales []*Transaction `json:"recent_sales"`
	LowStock    []*Card        `json:"low_stock"`
}
