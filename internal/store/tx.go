package store

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx exposes document writes inside a transaction.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a SQL transaction. Nothing fn wrote is kept if it
// returns an error.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func (t *Tx) PutDocument(ctx context.Context, userID, collection, docID string, v any) error {
	return putDocument(ctx, t.tx, userID, collection, docID, v)
}

func (t *Tx) DeleteDocument(ctx context.Context, userID, collection, docID string) error {
	return deleteDocument(ctx, t.tx, userID, collection, docID)
}
