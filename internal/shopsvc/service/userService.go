package service

import (
	"context"

	"github.com/clickbuy/shop-services/internal/shopsvc/models"
)

type UserStore interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}
