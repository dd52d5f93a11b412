package cart

import (
	"context"

	"online-bookstore/internal/domain"
	cartrepo "online-bookstore/internal/repository/cart"
)

// Service owns the caller's cart. Stock checks here are advisory: stock can
// change between adding an item and checking out, so checkout re-validates
// every line against the inventory ledger.
type Service struct {
	repo  cartRepo
	books bookRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error)
	AddItem(ctx context.Context, cartID int64, book domain.Book, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
}

type bookRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
}

func New(repo cartrepo.Repository, books bookRepo) *Service {
	return &Service{repo: repo, books: books}
}

type AddItemInput struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	return s.repo.GetByUser(ctx, userID)
}

// AddItem puts quantity copies of a book into the user's cart. Adding a book
// already in the cart merges into the existing line; the advisory stock
// check is applied to the added quantity only.
func (s *Service) AddItem(ctx context.Context, userID int64, in AddItemInput) (*domain.Cart, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	book, err := s.books.GetByID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}
	if book.StockQuantity < in.Quantity {
		return nil, &domain.InsufficientStockError{BookID: book.ID, Title: book.Title}
	}
	if err := s.repo.AddItem(ctx, cart.ID, *book, in.Quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// UpdateItem overwrites a line's quantity. The item must belong to the
// caller's cart. The new quantity gets the same advisory stock check as
// AddItem.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, domain.ErrUnauthorized
	}
	book, err := s.books.GetByID(ctx, item.BookID)
	if err != nil {
		return nil, err
	}
	if book.StockQuantity < quantity {
		return nil, &domain.InsufficientStockError{BookID: book.ID, Title: book.Title}
	}
	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, domain.ErrUnauthorized
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}
