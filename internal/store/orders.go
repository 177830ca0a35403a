package store

import (
	"context"
	"errors"

	"github.com/coder-dkr/doomswear/internal/models"
	"gorm.io/gorm"
)

// CreateOrder is a pure insert. Business validation is the checkout
// coordinator's job; the unique index on order_number is the only check
// enforced here.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}
