package service

import (
	"context"

	"github.com/clickbuy/shop-services/internal/comm"
	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	log "github.com/sirupsen/logrus"
)

// CardStore is the catalog persistence surface the service needs.
type CardStore interface {
	ListCards(ctx context.Context, f models.CardFilter) ([]*models.Card, error)
	GetCardByID(ctx context.Context, id string) (*models.Card, error)
	GetAttacksByCardID(ctx context.Context, cardID string) ([]models.Attack, error)
	CheckStock(ctx context.Context, ids []string) ([]models.StockStatus, error)
	SetStock(ctx context.Context, id string, stock int) (*models.Card, error)
	StockSummary(ctx context.Context) (*models.StockSummary, error)
	LowStock(ctx context.Context, threshold, limit int) ([]*models.Card, error)
}

type CardService struct {
	store             CardStore
	publisher         Publisher
	lowStockThreshold int
}

func NewCardService(store CardStore, publisher Publisher, lowStockThreshold int) *CardService {
	return &CardService{
		store:             store,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *CardService) ListCards(ctx context.Context, f models.CardFilter) ([]*models.Card, error) {
	return s.store.ListCards(ctx, f)
}

// GetCardDetail returns a card with its attack list, or nil when absent.
func (s *CardService) GetCardDetail(ctx context.Context, id string) (*models.Card, error) {
	card, err := s.store.GetCardByID(ctx, id)
	if err != nil || card == nil {
		return card, err
	}

	attacks, err := s.store.GetAttacksByCardID(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Attacks = attacks

	return card, nil
}

func (s *CardService) CheckStock(ctx context.Context, ids []string) ([]models.StockStatus, error) {
	return s.store.CheckStock(ctx, ids)
}

// OverrideStock is the admin stock override. A low-stock alert goes out
// when the new value sits at or below the threshold.
func (s *CardService) OverrideStock(ctx context.Context, id string, stock int) (*models.Card, error) {
	card, err := s.store.SetStock(ctx, id, stock)
	if err != nil || card == nil {
		return card, err
	}

	if s.publisher != nil && card.Stock <= s.lowStockThreshold {
		alert := comm.StockAlert{CardID: card.ID, CardName: card.Name, Stock: card.Stock}
		if err := s.publisher.PublishStockAlert(alert); err != nil {
			log.Errorf("failed to publish stock alert for card %s: %v", card.ID, err)
		}
	}

	return card, nil
}
