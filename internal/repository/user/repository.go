package user

import (
	"context"

	"online-bookstore/internal/domain"
)

type Repository interface {
	// Create inserts the user together with their empty cart; a user always
	// has exactly one cart from registration onward.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
