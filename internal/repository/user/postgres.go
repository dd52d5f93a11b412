package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"online-bookstore/internal/domain"
	cartrepo "online-bookstore/internal/repository/cart"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO users (email, name, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING id, email, name, password_hash, role, created_at
`
	var out domain.User
	err = tx.QueryRow(ctx, q, strings.ToLower(u.Email), u.Name, u.PasswordHash, u.Role).Scan(
		&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Role, &out.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}

	if _, err := cartrepo.CreateTx(ctx, tx, out.ID); err != nil {
		r.logger.Printf("user repo: create cart user_id=%d error=%v", out.ID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("user repo: created id=%d email=%s", out.ID, out.Email)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
SELECT id, email, name, password_hash, role, created_at
FROM users
WHERE id = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id, email, name, password_hash, role, created_at
FROM users
WHERE email = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, strings.ToLower(email)))
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var out domain.User
	err := row.Scan(&out.ID, &out.Email, &out.Name, &out.PasswordHash, &out.Role, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
