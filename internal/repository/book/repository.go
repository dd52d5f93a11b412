package book

import (
	"context"

	"online-bookstore/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)
	Update(ctx context.Context, book domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}
