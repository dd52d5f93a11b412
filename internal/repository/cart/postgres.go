package cart

import (
	"context"
	"errors"

	"online-bookstore/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// CreateTx inserts the empty cart for a newly registered user. It runs in
// the caller's transaction so user and cart appear together.
func CreateTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var cartID int64
	err := tx.QueryRow(ctx, `
INSERT INTO carts (user_id, total_cents)
VALUES ($1, 0)
RETURNING id
`, userID).Scan(&cartID)
	return cartID, err
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	const cartQuery = `
SELECT id, user_id, total_cents, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(&cart.ID, &cart.UserID, &cart.TotalCents, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT ci.id, ci.cart_id, ci.book_id, b.title, b.author, COALESCE(b.cover_image, ''),
       ci.quantity, ci.unit_price_cents, ci.quantity * ci.unit_price_cents, ci.created_at
FROM cart_items ci
JOIN books b ON b.id = ci.book_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.BookID,
			&item.BookTitle,
			&item.BookAuthor,
			&item.BookImage,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.SubtotalCents,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	cart.ItemCount = len(cart.Items)

	return &cart, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error) {
	const q = `
SELECT id, cart_id, book_id, quantity, unit_price_cents, quantity * unit_price_cents, created_at
FROM cart_items
WHERE id = $1
`
	var item domain.CartItem
	err := r.pool.QueryRow(ctx, q, itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.BookID,
		&item.Quantity,
		&item.UnitPriceCents,
		&item.SubtotalCents,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AddItem upserts a line for the book: a duplicate add increases the
// existing row's quantity instead of creating a second row. The unit price
// is snapshotted from the book on first add and kept on merge.
func (r *postgresRepo) AddItem(ctx context.Context, cartID int64, book domain.Book, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, book_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, book_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, book.ID, quantity, book.PriceCents); err != nil {
		return err
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $3
WHERE id = $1 AND cart_id = $2
`, itemID, cartID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Clear(ctx context.Context, cartID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ClearTx(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ClearTx deletes every line and zeroes the cached total inside the
// caller's transaction. Checkout reuses it so emptying the cart commits or
// rolls back together with the order.
func ClearTx(ctx context.Context, tx pgx.Tx, cartID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `UPDATE carts SET total_cents = 0 WHERE id = $1`, cartID)
	return err
}

// updateCartTotal recomputes the cached cart total from its lines. Every
// mutating method calls it inside the same transaction, keeping the
// total equal to the sum of subtotals at all times.
func updateCartTotal(ctx context.Context, tx pgx.Tx, cartID int64) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = COALESCE((
	SELECT SUM(quantity * unit_price_cents)
	FROM cart_items
	WHERE cart_id = $1
), 0)
WHERE id = $1
`, cartID)
	return err
}
