// Package inventory owns the per-book stock counter. Reservations are
// conditional decrements: Postgres takes a row lock on the UPDATE, so
// concurrent reservations on the same book serialize and stock can never be
// driven below zero. There is no release operation; a reservation made
// inside a larger transaction is undone by rolling that transaction back.
package inventory

import (
	"context"
	"errors"

	"online-bookstore/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Stock returns the current stock quantity for a book.
func (l *Ledger) Stock(ctx context.Context, bookID int64) (int, error) {
	var stock int
	err := l.pool.QueryRow(ctx, `SELECT stock_quantity FROM books WHERE id = $1`, bookID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

// Reserve atomically decrements a book's stock by quantity in its own
// transaction. It fails without mutation when stock is insufficient.
func (l *Ledger) Reserve(ctx context.Context, bookID int64, quantity int) error {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := l.ReserveTx(ctx, tx, bookID, quantity); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReserveTx performs the check-and-decrement inside the caller's
// transaction. The conditional WHERE clause makes check and decrement a
// single statement: zero rows affected for an existing book means the stock
// would have gone negative, and nothing was changed.
func (l *Ledger) ReserveTx(ctx context.Context, tx pgx.Tx, bookID int64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	cmd, err := tx.Exec(ctx, `
UPDATE books
SET stock_quantity = stock_quantity - $2
WHERE id = $1 AND stock_quantity >= $2
`, bookID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return &domain.InsufficientStockError{BookID: bookID}
	}
	return nil
}
