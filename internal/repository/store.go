// Package repository is the postgres implementation of the storage
// interfaces, built on pgx.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lenderapp/lender/internal/repository/base"
	"github.com/lenderapp/lender/internal/storage"
)

// Store is the postgres-backed storage.Store. The zero pool variant is
// produced internally by RunInTx and bound to a transaction.
type Store struct {
	pool *pgxpool.Pool
	db   base.DBTX
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

func (s *Store) Slots() storage.SlotRepo                 { return NewSlotRepository(s.db) }
func (s *Store) Bookings() storage.BookingRepo           { return NewBookingRepository(s.db) }
func (s *Store) Notifications() storage.NotificationRepo { return NewNotificationRepository(s.db) }
func (s *Store) Profiles() storage.ProfileRepo           { return NewProfileRepository(s.db) }

// RunInTx runs fn against a transaction-bound store. A nested call reuses
// the surrounding transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
