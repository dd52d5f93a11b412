package book

import (
	"context"
	"errors"
	"io"
	"log"

	"online-bookstore/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, COALESCE(description, ''), COALESCE(isbn, ''), COALESCE(category, ''), COALESCE(cover_image, ''), price_cents, stock_quantity, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM books
ORDER BY created_at DESC
`
	return r.queryBooks(ctx, q)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM books
WHERE category = $1
ORDER BY created_at DESC
`
	return r.queryBooks(ctx, q, category)
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM books
WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
`
	return r.queryBooks(ctx, q, query)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM books
WHERE id = $1
`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN, &b.Category,
		&b.CoverImage, &b.PriceCents, &b.StockQuantity, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (title, author, description, isbn, category, cover_image, price_cents, stock_quantity)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
RETURNING ` + bookColumns + `
`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q,
		book.Title, book.Author, book.Description, book.ISBN, book.Category,
		book.CoverImage, book.PriceCents, book.StockQuantity,
	).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN, &b.Category,
		&b.CoverImage, &b.PriceCents, &b.StockQuantity, &b.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("book repo: create title=%q error=%v", book.Title, err)
		return nil, err
	}
	r.logger.Printf("book repo: created id=%d title=%q", b.ID, b.Title)
	return &b, nil
}

func (r *postgresRepo) Update(ctx context.Context, book domain.Book) (*domain.Book, error) {
	const q = `
UPDATE books
SET title = $2,
    author = $3,
    description = NULLIF($4, ''),
    isbn = NULLIF($5, ''),
    category = NULLIF($6, ''),
    cover_image = NULLIF($7, ''),
    price_cents = $8,
    stock_quantity = $9
WHERE id = $1
RETURNING ` + bookColumns + `
`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q,
		book.ID, book.Title, book.Author, book.Description, book.ISBN,
		book.Category, book.CoverImage, book.PriceCents, book.StockQuantity,
	).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN, &b.Category,
		&b.CoverImage, &b.PriceCents, &b.StockQuantity, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("book repo: update id=%d error=%v", book.ID, err)
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("book repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) queryBooks(ctx context.Context, q string, args ...interface{}) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("book repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN, &b.Category,
			&b.CoverImage, &b.PriceCents, &b.StockQuantity, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
