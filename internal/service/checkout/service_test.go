package checkout

import (
	"context"
	"errors"
	"testing"

	"online-bookstore/internal/domain"
	orderrepo "online-bookstore/internal/repository/order"
)

type stubCartRepo struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartRepo) GetByUser(_ context.Context, _ int64) (*domain.Cart, error) {
	return s.cart, s.err
}

type stubOrderRepo struct {
	order  *domain.Order
	err    error
	calls  int
	lastIn orderrepo.CheckoutInput
}

func (s *stubOrderRepo) CreateFromCart(_ context.Context, in orderrepo.CheckoutInput) (*domain.Order, error) {
	s.calls++
	s.lastIn = in
	return s.order, s.err
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := &stubCartRepo{cart: &domain.Cart{ID: 10, UserID: 1}}
	orders := &stubOrderRepo{}
	svc := New(carts, orders)

	_, err := svc.Checkout(context.Background(), 1, Input{ShippingAddress: "addr", PaymentMethod: "card"})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("empty cart must not reach the order repository")
	}
}

func TestCheckoutCartNotFound(t *testing.T) {
	svc := New(&stubCartRepo{err: domain.ErrNotFound}, &stubOrderRepo{})
	_, err := svc.Checkout(context.Background(), 1, Input{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCheckoutPropagatesInsufficientStock(t *testing.T) {
	carts := &stubCartRepo{cart: &domain.Cart{
		ID:     10,
		UserID: 1,
		Items:  []domain.CartItem{{ID: 1, BookID: 5, Quantity: 3}},
	}}
	orders := &stubOrderRepo{err: &domain.InsufficientStockError{BookID: 5, Title: "Dune"}}
	svc := New(carts, orders)

	_, err := svc.Checkout(context.Background(), 1, Input{ShippingAddress: "addr", PaymentMethod: "card"})
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Title != "Dune" {
		t.Fatalf("error must name the offending book, got %+v", insufficient)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	carts := &stubCartRepo{cart: &domain.Cart{
		ID:     10,
		UserID: 1,
		Items:  []domain.CartItem{{ID: 1, BookID: 5, Quantity: 3}},
	}}
	expected := &domain.Order{ID: 42, UserID: 1, Status: domain.StatusPending, TotalCents: 4500}
	orders := &stubOrderRepo{order: expected}
	svc := New(carts, orders)

	got, err := svc.Checkout(context.Background(), 1, Input{
		ShippingAddress: "  12 Main St  ",
		PaymentMethod:   " card ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected order: %+v", got)
	}
	if orders.lastIn.UserID != 1 {
		t.Fatalf("unexpected user id %d", orders.lastIn.UserID)
	}
	if orders.lastIn.ShippingAddress != "12 Main St" || orders.lastIn.PaymentMethod != "card" {
		t.Fatalf("expected trimmed input, got %+v", orders.lastIn)
	}
}
