package order

import (
	"context"
	"errors"
	"io"
	"log"

	"online-bookstore/internal/domain"
	cartrepo "online-bookstore/internal/repository/cart"
	"online-bookstore/internal/repository/inventory"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool      *pgxpool.Pool
	inventory *inventory.Ledger
	logger    *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, ledger *inventory.Ledger, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, inventory: ledger, logger: logger}
}

type checkoutLine struct {
	bookID     int64
	title      string
	author     string
	priceCents int64
	quantity   int
}

// CreateFromCart converts the user's cart into an order in one transaction:
// reserve stock per line, snapshot book title/author/price into order items,
// insert order and items, empty the cart. A failure at any step rolls the
// whole attempt back, so either every line's stock is decremented and the
// order exists, or nothing changed.
func (r *postgresRepo) CreateFromCart(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the cart row so two checkouts by the same user serialize.
	var cartID int64
	err = tx.QueryRow(ctx, `
SELECT id
FROM carts
WHERE user_id = $1
FOR UPDATE
`, in.UserID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Book-id order gives a consistent lock order across concurrent
	// checkouts, so reservations cannot deadlock.
	rows, err := tx.Query(ctx, `
SELECT ci.book_id, b.title, b.author, b.price_cents, ci.quantity
FROM cart_items ci
JOIN books b ON b.id = ci.book_id
WHERE ci.cart_id = $1
ORDER BY ci.book_id ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.bookID, &line.title, &line.author, &line.priceCents, &line.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var totalCents int64
	for _, line := range lines {
		if err := r.inventory.ReserveTx(ctx, tx, line.bookID, line.quantity); err != nil {
			var insufficient *domain.InsufficientStockError
			if errors.As(err, &insufficient) {
				return nil, &domain.InsufficientStockError{BookID: line.bookID, Title: line.title}
			}
			return nil, err
		}
		totalCents += line.priceCents * int64(line.quantity)
	}

	var out domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, status, total_cents, shipping_address, payment_method)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, status, total_cents, shipping_address, payment_method, order_date
`, in.UserID, domain.StatusPending, totalCents, in.ShippingAddress, in.PaymentMethod).Scan(
		&out.ID, &out.UserID, &out.Status, &out.TotalCents, &out.ShippingAddress, &out.PaymentMethod, &out.OrderDate,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		var item domain.OrderItem
		err = tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, book_id, book_title, book_author, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, order_id, book_id, book_title, book_author, quantity, unit_price_cents
`, out.ID, line.bookID, line.title, line.author, line.quantity, line.priceCents).Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.BookTitle, &item.BookAuthor, &item.Quantity, &item.UnitPriceCents,
		)
		if err != nil {
			return nil, err
		}
		item.SubtotalCents = item.UnitPriceCents * int64(item.Quantity)
		out.Items = append(out.Items, item)
	}

	if err := cartrepo.ClearTx(ctx, tx, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order id=%d user_id=%d total_cents=%d lines=%d", out.ID, out.UserID, out.TotalCents, len(out.Items))
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	const q = `
SELECT o.id, o.user_id, u.name, o.status, o.total_cents, o.shipping_address, o.payment_method, o.order_date
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.id = $1
`
	var out domain.Order
	err := r.pool.QueryRow(ctx, q, orderID).Scan(
		&out.ID, &out.UserID, &out.UserName, &out.Status, &out.TotalCents,
		&out.ShippingAddress, &out.PaymentMethod, &out.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := r.fetchItems(ctx, out.ID)
	if err != nil {
		return nil, err
	}
	out.Items = items
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `
SELECT o.id, o.user_id, u.name, o.status, o.total_cents, o.shipping_address, o.payment_method, o.order_date
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.user_id = $1
ORDER BY o.order_date DESC
`
	return r.queryOrders(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT o.id, o.user_id, u.name, o.status, o.total_cents, o.shipping_address, o.payment_method, o.order_date
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.order_date DESC
`
	return r.queryOrders(ctx, q)
}

// UpdateStatus moves the order from one status to another in a single
// conditional UPDATE. The expected current status is part of the WHERE
// clause, so a concurrent update that already changed the status makes this
// one fail instead of silently overwriting it.
func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID int64, from, to string) (*domain.Order, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $3
WHERE id = $1 AND status = $2
`, orderID, from, to)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		var current string
		err := r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, &domain.StatusTransitionError{From: current, To: to}
	}
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.UserName, &o.Status, &o.TotalCents,
			&o.ShippingAddress, &o.PaymentMethod, &o.OrderDate,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const q = `
SELECT id, order_id, book_id, book_title, book_author, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.BookTitle,
			&item.BookAuthor, &item.Quantity, &item.UnitPriceCents,
		); err != nil {
			return nil, err
		}
		item.SubtotalCents = item.UnitPriceCents * int64(item.Quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
