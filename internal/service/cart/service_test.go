package cart

import (
	"context"
	"errors"
	"testing"

	"online-bookstore/internal/domain"
)

type stubRepo struct {
	carts         []*domain.Cart
	cartErr       error
	getCalls      int
	item          *domain.CartItem
	itemErr       error
	addErr        error
	updateErr     error
	removeErr     error
	clearErr      error
	lastAddCartID int64
	lastAddBook   domain.Book
	lastAddQty    int
	lastUpdItemID int64
	lastUpdQty    int
	lastRemItemID int64
	clearedCartID int64
}

func (s *stubRepo) GetByUser(_ context.Context, _ int64) (*domain.Cart, error) {
	if s.cartErr != nil {
		return nil, s.cartErr
	}
	var res *domain.Cart
	if len(s.carts) > 0 {
		idx := s.getCalls
		if idx >= len(s.carts) {
			idx = len(s.carts) - 1
		}
		res = s.carts[idx]
	}
	s.getCalls++
	return res, nil
}

func (s *stubRepo) GetItem(_ context.Context, _ int64) (*domain.CartItem, error) {
	return s.item, s.itemErr
}

func (s *stubRepo) AddItem(_ context.Context, cartID int64, book domain.Book, quantity int) error {
	s.lastAddCartID = cartID
	s.lastAddBook = book
	s.lastAddQty = quantity
	return s.addErr
}

func (s *stubRepo) UpdateItemQuantity(_ context.Context, _, itemID int64, quantity int) error {
	s.lastUpdItemID = itemID
	s.lastUpdQty = quantity
	return s.updateErr
}

func (s *stubRepo) RemoveItem(_ context.Context, _, itemID int64) error {
	s.lastRemItemID = itemID
	return s.removeErr
}

func (s *stubRepo) Clear(_ context.Context, cartID int64) error {
	s.clearedCartID = cartID
	return s.clearErr
}

type stubBookRepo struct {
	book *domain.Book
	err  error
}

func (s *stubBookRepo) GetByID(_ context.Context, _ int64) (*domain.Book, error) {
	return s.book, s.err
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, books: &stubBookRepo{}}
	for _, qty := range []int{0, -3} {
		_, err := svc.AddItem(context.Background(), 1, AddItemInput{BookID: 1, Quantity: qty})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestAddItemBookNotFound(t *testing.T) {
	repo := &stubRepo{carts: []*domain.Cart{{ID: 10, UserID: 1}}}
	svc := &Service{repo: repo, books: &stubBookRepo{err: domain.ErrNotFound}}
	_, err := svc.AddItem(context.Background(), 1, AddItemInput{BookID: 99, Quantity: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemSoftStockCheck(t *testing.T) {
	repo := &stubRepo{carts: []*domain.Cart{{ID: 10, UserID: 1}}}
	book := &domain.Book{ID: 5, Title: "Dune", PriceCents: 1500, StockQuantity: 2}
	svc := &Service{repo: repo, books: &stubBookRepo{book: book}}

	_, err := svc.AddItem(context.Background(), 1, AddItemInput{BookID: 5, Quantity: 3})
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.BookID != 5 || insufficient.Title != "Dune" {
		t.Fatalf("unexpected error detail %+v", insufficient)
	}
	if repo.lastAddQty != 0 {
		t.Fatalf("add should not reach repo on failed stock check")
	}
}

func TestAddItemHappyPath(t *testing.T) {
	initial := &domain.Cart{ID: 10, UserID: 1}
	updated := &domain.Cart{ID: 10, UserID: 1, ItemCount: 1, TotalCents: 3000}
	repo := &stubRepo{carts: []*domain.Cart{initial, updated}}
	book := &domain.Book{ID: 5, Title: "Dune", PriceCents: 1500, StockQuantity: 8}
	svc := &Service{repo: repo, books: &stubBookRepo{book: book}}

	got, err := svc.AddItem(context.Background(), 1, AddItemInput{BookID: 5, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastAddCartID != 10 || repo.lastAddQty != 2 || repo.lastAddBook.ID != 5 {
		t.Fatalf("add item not called as expected")
	}
}

func TestUpdateItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, books: &stubBookRepo{}}
	_, err := svc.UpdateItem(context.Background(), 1, 3, 0)
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	repo := &stubRepo{
		carts:   []*domain.Cart{{ID: 10, UserID: 1}},
		itemErr: domain.ErrNotFound,
	}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	_, err := svc.UpdateItem(context.Background(), 1, 3, 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateItemForeignCartUnauthorized(t *testing.T) {
	repo := &stubRepo{
		carts: []*domain.Cart{{ID: 10, UserID: 1}},
		item:  &domain.CartItem{ID: 3, CartID: 77, BookID: 5, Quantity: 1},
	}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	_, err := svc.UpdateItem(context.Background(), 1, 3, 2)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.lastUpdItemID != 0 {
		t.Fatalf("update should not reach repo for foreign item")
	}
}

func TestUpdateItemSoftStockCheck(t *testing.T) {
	repo := &stubRepo{
		carts: []*domain.Cart{{ID: 10, UserID: 1}},
		item:  &domain.CartItem{ID: 3, CartID: 10, BookID: 5, Quantity: 1},
	}
	book := &domain.Book{ID: 5, Title: "Dune", StockQuantity: 4}
	svc := &Service{repo: repo, books: &stubBookRepo{book: book}}
	_, err := svc.UpdateItem(context.Background(), 1, 3, 5)
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
}

func TestUpdateItemHappyPath(t *testing.T) {
	initial := &domain.Cart{ID: 10, UserID: 1}
	updated := &domain.Cart{ID: 10, UserID: 1, TotalCents: 4500}
	repo := &stubRepo{
		carts: []*domain.Cart{initial, updated},
		item:  &domain.CartItem{ID: 3, CartID: 10, BookID: 5, Quantity: 1},
	}
	book := &domain.Book{ID: 5, Title: "Dune", PriceCents: 1500, StockQuantity: 4}
	svc := &Service{repo: repo, books: &stubBookRepo{book: book}}

	got, err := svc.UpdateItem(context.Background(), 1, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastUpdItemID != 3 || repo.lastUpdQty != 3 {
		t.Fatalf("update not called as expected")
	}
}

func TestRemoveItemForeignCartUnauthorized(t *testing.T) {
	repo := &stubRepo{
		carts: []*domain.Cart{{ID: 10, UserID: 1}},
		item:  &domain.CartItem{ID: 3, CartID: 77},
	}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	_, err := svc.RemoveItem(context.Background(), 1, 3)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRemoveItemHappyPath(t *testing.T) {
	initial := &domain.Cart{ID: 10, UserID: 1, ItemCount: 1}
	updated := &domain.Cart{ID: 10, UserID: 1}
	repo := &stubRepo{
		carts: []*domain.Cart{initial, updated},
		item:  &domain.CartItem{ID: 3, CartID: 10},
	}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	got, err := svc.RemoveItem(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated || repo.lastRemItemID != 3 {
		t.Fatalf("remove not called as expected")
	}
}

func TestClearHappyPath(t *testing.T) {
	initial := &domain.Cart{ID: 10, UserID: 1, ItemCount: 2, TotalCents: 999}
	cleared := &domain.Cart{ID: 10, UserID: 1}
	repo := &stubRepo{carts: []*domain.Cart{initial, cleared}}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	got, err := svc.Clear(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cleared || repo.clearedCartID != 10 {
		t.Fatalf("clear not called as expected")
	}
}

func TestGetPropagatesRepoError(t *testing.T) {
	repo := &stubRepo{cartErr: errors.New("boom")}
	svc := &Service{repo: repo, books: &stubBookRepo{}}
	_, err := svc.Get(context.Background(), 1)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}
