package service

import (
	"context"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
)

type DashboardService struct {
	cards             CardStore
	transactions      TransactionStore
	lowStockThreshold int
}

func NewDashboardService(cards CardStore, transactions TransactionStore, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		cards:             cards,
		transactions:      transactions,
		lowStockThreshold: lowStockThreshold,
	}
}

// Report composes the admin dashboard: catalog and sales aggregates,
// the ten most recent sales and the cards running low.
func (s *DashboardService) Report(ctx context.Context) (*models.DashboardReport, error) {
	stock, err := s.cards.StockSummary(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.transactions.SalesStats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactions.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.cards.LowStock(ctx, s.lowStockThreshold, 20)
	if err != nil {
		return nil, err
	}

	return &models.DashboardReport{
		Stock:       *stock,
		Sales:       *sales,
		RecentSales: recent,
		LowStock:    lowStock,
	}, nil
}
