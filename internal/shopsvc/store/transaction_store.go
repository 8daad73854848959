package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionStore struct {
	db *pgxpool.Pool
}

func NewTransactionStore(db *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{db: db}
}

// CheckoutRequest is a validated purchase proposal. CardIDs holds one
// entry per purchased unit, so a duplicated id buys two independent units.
type CheckoutRequest struct {
	TransactionID  string
	CardIDs        []string
	CardType       string
	LastFourDigits string
	TaxRate        decimal.Decimal
}

// CheckoutResult reports the committed transaction and the stock
// remaining for each purchased card after the decrements.
type CheckoutResult struct {
	Transaction    *models.Transaction
	RemainingStock map[string]int
}

// SalesQuery filters the admin sales history.
type SalesQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Checkout validates stock and commits the purchase in one database
// transaction: the stock check, the transactions/transaction_items
// inserts and the per-unit conditional decrements either all take
// effect or none do. Referenced card rows are locked for the duration,
// so stock can never go negative and two concurrent purchases of the
// last unit resolve to exactly one winner.
//
// Line-item prices and the transaction totals are computed from the
// stored card prices, never from caller input.
func (s *TransactionStore) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer tx.Rollback(ctx)

	// dedupe for the lock query, keep request order for the units
	uniq := make([]string, 0, len(req.CardIDs))
	seen := make(map[string]bool, len(req.CardIDs))
	for _, id := range req.CardIDs {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}

	rows, err := tx.Query(ctx, `
		SELECT id, name, price, stock
		FROM cards
		WHERE id = ANY($1)
		FOR UPDATE
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cards for checkout: %w", err)
	}

	type lockedCard struct {
		name  string
		price decimal.Decimal
		stock int
	}
	locked := make(map[string]lockedCard, len(uniq))
	for rows.Next() {
		var id string
		var lc lockedCard
		if err := rows.Scan(&id, &lc.name, &lc.price, &lc.stock); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked card: %w", err)
		}
		locked[id] = lc
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// whole-request validation before any write
	var stockErrs []StockError
	for _, id := range req.CardIDs {
		lc, ok := locked[id]
		if !ok {
			stockErrs = append(stockErrs, StockError{CardID: id, Reason: ReasonNotFound})
			continue
		}
		if lc.stock < 1 {
			stockErrs = append(stockErrs, StockError{CardID: id, CardName: lc.name, Reason: ReasonOutOfStock})
		}
	}
	if len(stockErrs) > 0 {
		return nil, &StockUnavailableError{Items: stockErrs}
	}

	total := decimal.Zero
	for _, id := range req.CardIDs {
		total = total.Add(locked[id].price)
	}
	tax := total.Mul(req.TaxRate).Round(2)
	grand := total.Add(tax)

	trans := &models.Transaction{
		TransactionID:  req.TransactionID,
		TotalAmount:    total,
		TaxAmount:      tax,
		GrandTotal:     grand,
		PaymentStatus:  "completed",
		CardType:       req.CardType,
		LastFourDigits: req.LastFourDigits,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (
			transaction_id, total_amount, tax_amount, grand_total,
			payment_status, card_type, last_four_digits
		)
		VALUES ($1, $2, $3, $4, 'completed', $5, $6)
		RETURNING id, created_at
	`, req.TransactionID, total, tax, grand, req.CardType, req.LastFourDigits).
		Scan(&trans.ID, &trans.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	remaining := make(map[string]int, len(uniq))
	for _, id := range req.CardIDs {
		lc := locked[id]

		item := models.TransactionItem{
			TransactionID: trans.ID,
			CardID:        id,
			CardName:      lc.name,
			Price:         lc.price,
			Quantity:      1,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO transaction_items (transaction_id, card_id, card_name, price, quantity)
			VALUES ($1, $2, $3, $4, 1)
			RETURNING id
		`, trans.ID, id, lc.name, lc.price).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction item: %w", err)
		}
		trans.Items = append(trans.Items, item)

		// conditional decrement: zero rows means a duplicated id in this
		// request exhausted the stock, the rollback discards everything
		var left int
		err = tx.QueryRow(ctx, `
			UPDATE cards
			SET stock = stock - 1
			WHERE id = $1 AND stock > 0
			RETURNING stock
		`, id).Scan(&left)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &StockUnavailableError{
					Items: []StockError{{CardID: id, CardName: lc.name, Reason: ReasonOutOfStock}},
				}
			}
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		remaining[id] = left
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return &CheckoutResult{Transaction: trans, RemainingStock: remaining}, nil
}

// ListRecent returns the newest transactions with their nested items.
func (s *TransactionStore) ListRecent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, transaction_id, total_amount, tax_amount, grand_total,
			payment_status, card_type, last_four_digits, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, transactions)
}

// SalesHistory returns transactions in the requested window, newest first.
func (s *TransactionStore) SalesHistory(ctx context.Context, q SalesQuery) ([]*models.Transaction, error) {
	query := `
		SELECT id, transaction_id, total_amount, tax_amount, grand_total,
			payment_status, card_type, last_four_digits, created_at
		FROM transactions
		WHERE ($1::timestamp IS NULL OR created_at >= $1)
		  AND ($2::timestamp IS NULL OR created_at <= $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := s.db.Query(ctx, query, q.StartDate, q.EndDate, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales history: %w", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, transactions)
}

// SalesStats aggregates the transactions table for the dashboard.
func (s *TransactionStore) SalesStats(ctx context.Context) (*models.SalesStats, error) {
	stats := &models.SalesStats{}
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM transactions
	`).Scan(&stats.TotalTransactions, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales stats: %w", err)
	}

	return stats, nil
}

func scanTransactions(rows pgx.Rows) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	for rows.Next() {
		t := &models.Transaction{}
		err := rows.Scan(
			&t.ID,
			&t.TransactionID,
			&t.TotalAmount,
			&t.TaxAmount,
			&t.GrandTotal,
			&t.PaymentStatus,
			&t.CardType,
			&t.LastFourDigits,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (s *TransactionStore) attachItems(ctx context.Context, transactions []*models.Transaction) ([]*models.Transaction, error) {
	if len(transactions) == 0 {
		return transactions, nil
	}

	ids := make([]int64, 0, len(transactions))
	byID := make(map[int64]*models.Transaction, len(transactions))
	for _, t := range transactions {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, transaction_id, card_id, card_name, price, quantity
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.TransactionItem
		err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.CardID,
			&item.CardName,
			&item.Price,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		if t, ok := byID[item.TransactionID]; ok {
			t.Items = append(t.Items, item)
		}
	}

	return transactions, rows.Err()
}
