package repository

import (
	"context"

	"github.com/IDS-Mandujano/electronica-back/internal/database"

	"gorm.io/gorm"
)

// Store groups the repositories and owns the transaction boundary
type Store interface {
	Tickets() TicketRepository
	Parts() PartRepository
	MaterialUsages() MaterialUsageRepository
	SaleCards() SaleCardRepository
	Stats() StatsRepository

	// WithTransaction runs fn against a Store bound to one database
	// transaction. Returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db database.DB
}

// NewStore creates a new store instance
func NewStore(db database.DB) Store {
	return &store{db: db}
}

// Helper type for transaction support
type dbWrapper struct {
	db *gorm.DB
}

func (w *dbWrapper) DB() (*gorm.DB, error) {
	return w.db, nil
}

func (w *dbWrapper) Close() error {
	return nil
}

func (s *store) Tickets() TicketRepository               { return NewTicketRepository(s.db) }
func (s *store) Parts() PartRepository                   { return NewPartRepository(s.db) }
func (s *store) MaterialUsages() MaterialUsageRepository { return NewMaterialUsageRepository(s.db) }
func (s *store) SaleCards() SaleCardRepository           { return NewSaleCardRepository(s.db) }
func (s *store) Stats() StatsRepository                  { return NewStatsRepository(s.db) }

// WithTransaction executes the given function within a database transaction
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	gormDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: &dbWrapper{db: tx}})
	})
}

// conn returns the gorm handle bound to ctx
func conn(ctx context.Context, db database.DB) (*gorm.DB, error) {
	gormDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return gormDB.WithContext(ctx), nil
}
