package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder-dkr/doomswear/internal/models"
	"gorm.io/gorm"
)

// CreateProduct inserts a catalog row. Catalog management is otherwise
// out of scope; the seed is the only caller.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListProducts returns the catalog, optionally filtered by a free-text
// query over name, description and tags.
func (s *Store) ListProducts(ctx context.Context, query string) ([]models.Product, error) {
	db := s.db.WithContext(ctx)
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	}
	var products []models.Product
	if err := db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Reserve decrements a product's inventory by quantity and returns the
// remaining count. The decrement is conditional on sufficient stock, so
// two concurrent reservations can never drive inventory negative: the
// second one sees zero rows affected and fails. Only committed if the
// enclosing transaction commits.
func (s *Store) Reserve(ctx context.Context, productID uint, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("reserve: quantity must be positive, got %d", quantity)
	}

	res := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		Update("inventory", gorm.Expr("inventory - ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		p, err := s.GetProduct(ctx, productID)
		if err != nil {
			return 0, err
		}
		return 0, &InsufficientStockError{Available: p.Inventory}
	}

	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Inventory, nil
}
