package checkout

import (
	"context"
	"strings"

	"online-bookstore/internal/domain"
	orderrepo "online-bookstore/internal/repository/order"
)

// Service converts a cart into an order. The repository runs the whole
// conversion in one database transaction, so a failed attempt leaves no
// observable side effect: no stock decrements, no order rows, cart intact.
type Service struct {
	carts  cartRepo
	orders orderRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CheckoutInput) (*domain.Order, error)
}

func New(carts cartRepo, orders orderRepo) *Service {
	return &Service{carts: carts, orders: orders}
}

// Input carries the opaque shipping and payment fields persisted verbatim
// on the order.
type Input struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

// Checkout validates the caller's cart and hands it to the transactional
// conversion. The empty-cart check repeats inside the transaction after the
// cart row is locked; this early check just avoids opening a transaction
// for an obviously doomed attempt.
func (s *Service) Checkout(ctx context.Context, userID int64, in Input) (*domain.Order, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return s.orders.CreateFromCart(ctx, orderrepo.CheckoutInput{
		UserID:          userID,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
	})
}
