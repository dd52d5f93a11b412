package cart

import (
	"context"

	"online-bookstore/internal/domain"
)

type Repository interface {
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error)
	AddItem(ctx context.Context, cartID int64, book domain.Book, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
}
