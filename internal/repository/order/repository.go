package order

import (
	"context"

	"online-bookstore/internal/domain"
)

// CheckoutInput carries everything the checkout transaction needs besides
// the cart itself, which is loaded and locked inside the transaction.
type CheckoutInput struct {
	UserID          int64
	ShippingAddress string
	PaymentMethod   string
}

type Repository interface {
	CreateFromCart(ctx context.Context, in CheckoutInput) (*domain.Order, error)
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus applies the change only while the order still has the
	// expected current status, failing with StatusTransitionError otherwise.
	UpdateStatus(ctx context.Context, orderID int64, from, to string) (*domain.Order, error)
}
