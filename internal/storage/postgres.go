package storage

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/db"
)

// PostgresSlot stores slots as rows of the prep_slots table
type PostgresSlot struct {
	db *db.DB
}

// NewPostgresSlot connects and ensures the slot table exists
func NewPostgresSlot(ctx context.Context, databaseURL string) (*PostgresSlot, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("postgres slot: %w", err)
	}
	return &PostgresSlot{db: database}, nil
}

func (p *PostgresSlot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return p.db.GetSlot(ctx, key)
}

func (p *PostgresSlot) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return p.db.PutSlot(ctx, key, value)
}

func (p *PostgresSlot) Delete(ctx context.Context, key string) error {
	return p.db.DeleteSlot(ctx, key)
}

func (p *PostgresSlot) Close() error {
	p.db.Close()
	return nil
}
