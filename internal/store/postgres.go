package store

import (
	"context"
	"errors"

	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store wraps a database handle. It is passed explicitly to whoever
// needs it; there is no package-level connection.
type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to the database")
	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open gorm handle. Tests use this with an
// in-memory sqlite database.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Product{}, &models.User{}, &models.LedgerEntry{}, &models.Order{}); err != nil {
		return err
	}
	logger.Log.Info("migrations loaded")
	return nil
}

func (s *Store) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
		return
	}
	sqlDB.Close()
	logger.Log.Info("db closed")
}

// Atomically runs fn inside a single database transaction. Every
// mutation fn performs through the passed store commits together or not
// at all; returning an error rolls the whole unit back.
func (s *Store) Atomically(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// IsTransient reports whether err is a concurrency abort (serialization
// failure, deadlock) that the caller may retry.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "40"
	}
	return false
}
