package book

import (
	"context"
	"errors"
	"testing"

	"online-bookstore/internal/domain"
)

type stubRepo struct {
	books   []domain.Book
	book    *domain.Book
	err     error
	created *domain.Book
	updated *domain.Book
}

func (s *stubRepo) List(_ context.Context) ([]domain.Book, error) {
	return s.books, s.err
}

func (s *stubRepo) ListByCategory(_ context.Context, _ string) ([]domain.Book, error) {
	return s.books, s.err
}

func (s *stubRepo) Search(_ context.Context, _ string) ([]domain.Book, error) {
	return s.books, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Book, error) {
	return s.book, s.err
}

func (s *stubRepo) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	s.created = &b
	return &b, s.err
}

func (s *stubRepo) Update(_ context.Context, b domain.Book) (*domain.Book, error) {
	s.updated = &b
	return &b, s.err
}

func (s *stubRepo) Delete(_ context.Context, _ int64) error {
	return s.err
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	cases := []struct {
		name string
		in   Input
	}{
		{"missing title", Input{Author: "A", PriceCents: 100}},
		{"missing author", Input{Title: "T", PriceCents: 100}},
		{"negative price", Input{Title: "T", Author: "A", PriceCents: -1}},
		{"negative stock", Input{Title: "T", Author: "A", PriceCents: 100, StockQuantity: -1}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.in)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if repo.created != nil {
		t.Fatalf("invalid input must not reach the repository")
	}
}

func TestCreate_TrimsAndPersists(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	out, err := svc.Create(context.Background(), Input{
		Title:         "  Dune ",
		Author:        " Frank Herbert ",
		PriceCents:    1500,
		StockQuantity: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != "Dune" || out.Author != "Frank Herbert" {
		t.Fatalf("expected trimmed fields, got %+v", out)
	}
}

func TestUpdate_RejectsInvalidInput(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	_, err := svc.Update(context.Background(), 1, Input{Author: "A"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("invalid input must not reach the repository")
	}
}

func TestSearch_EmptyQueryFallsBackToList(t *testing.T) {
	repo := &stubRepo{books: []domain.Book{{ID: 1, Title: "Dune"}}}
	svc := New(repo)
	out, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("unexpected result %+v", out)
	}
}
