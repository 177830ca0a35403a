package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user with the opening wallet credit and the
// matching ledger entry, in one transaction.
func (s *Store) CreateUser(ctx context.Context, user *models.User, openingCredit decimal.Decimal) error {
	return s.Atomically(ctx, func(tx *Store) error {
		user.Wallet = openingCredit
		if err := tx.db.Create(user).Error; err != nil {
			return err
		}
		entry := models.LedgerEntry{
			UserID:      user.ID,
			Amount:      openingCredit,
			Kind:        models.KindCredit,
			Description: "Opening balance credit",
		}
		return tx.db.Create(&entry).Error
	})
}

// Debit decreases the user's wallet by amount and appends a debit
// ledger entry referencing orderID. The decrement is conditional on
// sufficient balance, so concurrent debits cannot overdraw the wallet.
// Only committed if the enclosing transaction commits.
func (s *Store) Debit(ctx context.Context, userID uint, amount decimal.Decimal, description string, orderID *uint) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("debit: amount must be positive, got %s", amount)
	}

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND wallet >= ?", userID, amount).
		Update("wallet", gorm.Expr("wallet - ?", amount))
	if res.Error != nil {
		return decimal.Zero, res.Error
	}

	if res.RowsAffected == 0 {
		u, err := s.GetUser(ctx, userID)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, &InsufficientFundsError{Balance: u.Wallet, Required: amount}
	}

	entry := models.LedgerEntry{
		UserID:      userID,
		OrderID:     orderID,
		Amount:      amount,
		Kind:        models.KindDebit,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return decimal.Zero, err
	}

	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return u.Wallet, nil
}

// Statement returns the user's ledger entries in insertion order.
func (s *Store) Statement(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
