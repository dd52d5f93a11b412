package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type bookSeed struct {
	Title         string
	Author        string
	Description   string
	ISBN          string
	Category      string
	PriceCents    int64
	StockQuantity int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@bookstore.local", "Admin", "admin-password"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	books := []bookSeed{
		{
			Title:         "The Go Programming Language",
			Author:        "Alan A. A. Donovan",
			Description:   "The authoritative resource for writing Go",
			ISBN:          "978-0134190440",
			Category:      "Programming",
			PriceCents:    3999,
			StockQuantity: 25,
		},
		{
			Title:         "Designing Data-Intensive Applications",
			Author:        "Martin Kleppmann",
			Description:   "The big ideas behind reliable, scalable systems",
			ISBN:          "978-1449373320",
			Category:      "Programming",
			PriceCents:    4599,
			StockQuantity: 12,
		},
		{
			Title:         "The Name of the Wind",
			Author:        "Patrick Rothfuss",
			Description:   "The riveting first-person narrative of Kvothe",
			ISBN:          "978-0756404741",
			Category:      "Fantasy",
			PriceCents:    1099,
			StockQuantity: 40,
		},
	}

	for _, b := range books {
		if err := upsertBook(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.Title, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, name, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var userID int64
	err = pool.QueryRow(ctx, `
INSERT INTO users (email, name, password_hash, role)
VALUES ($1, $2, $3, 'ADMIN')
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, email, name, string(hashed)).Scan(&userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO carts (user_id, total_cents)
VALUES ($1, 0)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	return err
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed) error {
	const q = `
INSERT INTO books (title, author, description, isbn, category, price_cents, stock_quantity)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM books WHERE isbn = $4)
`
	_, err := pool.Exec(ctx, q, b.Title, b.Author, b.Description, b.ISBN, b.Category, b.PriceCents, b.StockQuantity)
	return err
}
