package store

import (
	"context"
	"fmt"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// ListUsers returns every registered user, newest first.
func (s *UserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, full_name, role, created_at, last_login, is_active
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FullName,
			&u.Role,
			&u.CreatedAt,
			&u.LastLogin,
			&u.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
