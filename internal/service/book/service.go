package book

import (
	"context"
	"fmt"
	"strings"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
)

type Service struct {
	repo bookrepo.Repository
}

func New(repo bookrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	Category      string `json:"category"`
	CoverImage    string `json:"coverImage"`
	PriceCents    int64  `json:"priceCents"`
	StockQuantity int    `json:"stockQuantity"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author required", domain.ErrInvalidInput)
	}
	if in.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (in Input) toDomain() domain.Book {
	return domain.Book{
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		Description:   in.Description,
		ISBN:          in.ISBN,
		Category:      in.Category,
		CoverImage:    in.CoverImage,
		PriceCents:    in.PriceCents,
		StockQuantity: in.StockQuantity,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in.toDomain())
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	book := in.toDomain()
	book.ID = id
	return s.repo.Update(ctx, book)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
