package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

const cardColumns = `id, name, image_url, rarity, types, set_name, set_id,
	hp, stage, description, price, stock, created_at, updated_at`

func scanCard(row pgx.Row) (*models.Card, error) {
	c := &models.Card{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ImageURL,
		&c.Rarity,
		&c.Types,
		&c.SetName,
		&c.SetID,
		&c.HP,
		&c.Stage,
		&c.Description,
		&c.Price,
		&c.Stock,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCards returns catalog cards matching the filter, newest first.
// Name, rarity and set filters are case-insensitive containment,
// the type filter is exact membership in the types array.
func (s *CardStore) ListCards(ctx context.Context, f models.CardFilter) ([]*models.Card, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + cardColumns + " FROM cards WHERE 1=1")

	var params []interface{}
	n := 1

	if f.InStock {
		sb.WriteString(" AND stock > 0")
	}
	if f.Type != "" {
		sb.WriteString(" AND $" + strconv.Itoa(n) + " = ANY(types)")
		params = append(params, f.Type)
		n++
	}
	if f.Rarity != "" {
		sb.WriteString(" AND rarity ILIKE $" + strconv.Itoa(n))
		params = append(params, "%"+f.Rarity+"%")
		n++
	}
	if f.Set != "" {
		sb.WriteString(" AND set_name ILIKE $" + strconv.Itoa(n))
		params = append(params, "%"+f.Set+"%")
		n++
	}
	if f.Name != "" {
		sb.WriteString(" AND name ILIKE $" + strconv.Itoa(n))
		params = append(params, "%"+f.Name+"%")
		n++
	}

	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := s.db.Query(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// GetCardByID returns a single card, or nil when the id is unknown.
func (s *CardStore) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1
		LIMIT 1
	`

	card, err := scanCard(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by id: %w", err)
	}

	return card, nil
}

// GetAttacksByCardID returns the attack list inserted for a card,
// in no guaranteed order.
func (s *CardStore) GetAttacksByCardID(ctx context.Context, cardID string) ([]models.Attack, error) {
	query := `
		SELECT name, damage, effect
		FROM card_attacks
		WHERE card_id = $1
	`

	rows, err := s.db.Query(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card attacks: %w", err)
	}
	defer rows.Close()

	var attacks []models.Attack
	for rows.Next() {
		var a models.Attack
		if err := rows.Scan(&a.Name, &a.Damage, &a.Effect); err != nil {
			return nil, fmt.Errorf("failed to scan attack: %w", err)
		}
		attacks = append(attacks, a)
	}

	return attacks, rows.Err()
}

// CheckStock reports availability for every requested id.
// Ids missing from the catalog are reported as unavailable with stock 0.
func (s *CardStore) CheckStock(ctx context.Context, ids []string) ([]models.StockStatus, error) {
	query := `
		SELECT id, name, stock
		FROM cards
		WHERE id = ANY($1)
	`

	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check stock: %w", err)
	}
	defer rows.Close()

	found := make(map[string]models.StockStatus, len(ids))
	for rows.Next() {
		var id, name string
		var stock int
		if err := rows.Scan(&id, &name, &stock); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		found[id] = models.StockStatus{
			ID:        id,
			Name:      name,
			Available: stock > 0,
			Stock:     stock,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status := make([]models.StockStatus, 0, len(ids))
	for _, id := range ids {
		if st, ok := found[id]; ok {
			status = append(status, st)
			continue
		}
		status = append(status, models.StockStatus{ID: id})
	}

	return status, nil
}

// SetStock is the admin stock override. Returns nil when the card is absent.
func (s *CardStore) SetStock(ctx context.Context, id string, stock int) (*models.Card, error) {
	query := `
		UPDATE cards
		SET stock = $2
		WHERE id = $1
		RETURNING ` + cardColumns

	card, err := scanCard(s.db.QueryRow(ctx, query, id, stock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return card, nil
}

// StockSummary aggregates catalog counts for the dashboard.
func (s *CardStore) StockSummary(ctx context.Context) (*models.StockSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(stock), 0),
			COUNT(*) FILTER (WHERE stock > 0),
			COUNT(*) FILTER (WHERE stock = 0)
		FROM cards
	`

	sum := &models.StockSummary{}
	err := s.db.QueryRow(ctx, query).Scan(
		&sum.TotalCards,
		&sum.TotalStock,
		&sum.CardsInStock,
		&sum.CardsOutOfStock,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock summary: %w", err)
	}

	return sum, nil
}

// LowStock lists cards running out, lowest stock first.
func (s *CardStore) LowStock(ctx context.Context, threshold, limit int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE stock > 0 AND stock <= $1
		ORDER BY stock ASC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}
